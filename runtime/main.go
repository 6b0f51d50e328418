package main

import (
	"GopherFPS/internal/config"
	"GopherFPS/internal/engine"
	"GopherFPS/internal/logger"
	"GopherFPS/internal/scene"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var _ scene.Host = (*engine.Gopher)(nil)

type options struct {
	configPath string
	scene      string
	width      int
	height     int
	seed       int64
	debug      bool
	set        map[string]bool
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	var opts options
	fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&opts.scene, "scene", "", fmt.Sprintf("scene to load %v", scene.Names()))
	fs.IntVar(&opts.width, "width", 0, "window width in pixels")
	fs.IntVar(&opts.height, "height", 0, "window height in pixels")
	fs.Int64Var(&opts.seed, "seed", 0, "seed for procedural textures and terrain")
	fs.BoolVar(&opts.debug, "debug", false, "wireframe rendering and debug logging")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// loadConfig reads the config file, if any, and lets explicit flags win.
func loadConfig(opts options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return cfg, err
		}
	}

	if opts.set["scene"] {
		cfg.Scene = opts.scene
	}
	if opts.set["width"] {
		cfg.Window.Width = int32(opts.width)
	}
	if opts.set["height"] {
		cfg.Window.Height = int32(opts.height)
	}
	if opts.set["seed"] {
		cfg.Seed = opts.seed
	}
	if opts.set["debug"] {
		cfg.Debug = opts.debug
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "validating flags")
	}
	return cfg, nil
}

func run(args []string) error {
	opts, err := parseFlags(flag.NewFlagSet("gopherfps", flag.ContinueOnError), args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Debug); err != nil {
		return errors.Wrap(err, "initializing logger")
	}
	defer logger.Sync()

	gopher := engine.NewGopher(cfg)
	b, err := scene.New(cfg.Scene, gopher, cfg.Seed)
	if err != nil {
		return err
	}
	gopher.AddBehaviour(b)

	if opts.configPath != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := config.Watch(ctx, opts.configPath, gopher.QueueConfig); err != nil {
			logger.Log.Warn("Config changes will not be picked up", zap.Error(err))
		}
	}

	return gopher.Render(-1, -1)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Cause(err) == flag.ErrHelp {
			return
		}
		logger.Log.Error("GopherFPS exited with an error", zap.Error(err))
		logger.Sync()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
