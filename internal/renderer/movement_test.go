package renderer

import "testing"

func TestDirectionSetAddHasRemove(t *testing.T) {
	s := NewDirectionSet(Forward, Left)

	if !s.Has(Forward) || !s.Has(Left) {
		t.Fatalf("expected forward and left in %08b", s)
	}
	if s.Has(Backward) || s.Has(Right) {
		t.Errorf("unexpected directions in %08b", s)
	}

	s = s.Remove(Forward)
	if s.Has(Forward) {
		t.Error("forward should be removed")
	}
	if !s.Remove(Left).Empty() {
		t.Error("set should be empty after removing every direction")
	}
}

func TestDirectionSetAxes(t *testing.T) {
	tests := []struct {
		name           string
		set            DirectionSet
		forward, right float32
	}{
		{"none", NewDirectionSet(), 0, 0},
		{"forward", NewDirectionSet(Forward), 1, 0},
		{"backward", NewDirectionSet(Backward), -1, 0},
		{"left", NewDirectionSet(Left), 0, -1},
		{"forward right", NewDirectionSet(Forward, Right), 1, 1},
		{"opposites cancel", NewDirectionSet(Forward, Backward, Left, Right), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, r := tt.set.Axes()
			if f != tt.forward || r != tt.right {
				t.Errorf("Axes() = (%v, %v), want (%v, %v)", f, r, tt.forward, tt.right)
			}
		})
	}
}

func TestDirectionString(t *testing.T) {
	if Forward.String() != "forward" || Right.String() != "right" {
		t.Error("unexpected direction names")
	}
	if Direction(42).String() != "unknown" {
		t.Error("out of range direction should be unknown")
	}
}
