package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestDefaultLoggerIsUsable(t *testing.T) {
	if Log == nil {
		t.Fatal("Log should never be nil")
	}
	Log.Info("nop logger accepts entries")
}

func TestInitDebugLevel(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	if err := Init(true); err != nil {
		t.Fatalf("Init(true) failed: %v", err)
	}
	if ce := Log.Check(zapcore.DebugLevel, "debug"); ce == nil {
		t.Error("debug entries should be enabled when debug is true")
	}
}

func TestInitInfoLevel(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	if err := Init(false); err != nil {
		t.Fatalf("Init(false) failed: %v", err)
	}
	if ce := Log.Check(zapcore.DebugLevel, "debug"); ce != nil {
		t.Error("debug entries should be disabled when debug is false")
	}
}
