package renderer

// Direction is a single camera translation, decoupled from any windowing
// system's key codes.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// DirectionSet holds every direction requested during one frame.
type DirectionSet uint8

func NewDirectionSet(dirs ...Direction) DirectionSet {
	var s DirectionSet
	for _, d := range dirs {
		s = s.Add(d)
	}
	return s
}

func (s DirectionSet) Add(d Direction) DirectionSet {
	return s | 1<<uint(d)
}

func (s DirectionSet) Remove(d Direction) DirectionSet {
	return s &^ (1 << uint(d))
}

func (s DirectionSet) Has(d Direction) bool {
	return s&(1<<uint(d)) != 0
}

func (s DirectionSet) Empty() bool {
	return s == 0
}

// Axes returns the summed unit contribution along front and right. Opposite
// directions cancel; the pair is not normalized, so a diagonal moves faster
// than a single direction.
func (s DirectionSet) Axes() (forward, right float32) {
	if s.Has(Forward) {
		forward++
	}
	if s.Has(Backward) {
		forward--
	}
	if s.Has(Right) {
		right++
	}
	if s.Has(Left) {
		right--
	}
	return forward, right
}
