package behaviour

import "testing"

type countingBehaviour struct {
	starts, updates, fixed int
	lastDelta              float32
}

func (b *countingBehaviour) Start() { b.starts++ }

func (b *countingBehaviour) Update(deltaTime float32) {
	b.updates++
	b.lastDelta = deltaTime
}

func (b *countingBehaviour) UpdateFixed(step float32) { b.fixed++ }

func TestBehaviourManagerStartsOnce(t *testing.T) {
	m := NewBehaviourManager()
	b := &countingBehaviour{}
	m.Add(b)

	m.UpdateAll(0.01)
	m.UpdateAll(0.01)
	m.UpdateAll(0.01)

	if b.starts != 1 {
		t.Errorf("Start() should run once, ran %d times", b.starts)
	}
	if b.updates != 3 {
		t.Errorf("expected 3 updates, got %d", b.updates)
	}
	if b.lastDelta != 0.01 {
		t.Errorf("Update should receive the frame delta, got %v", b.lastDelta)
	}
}

func TestBehaviourManagerFixedSteps(t *testing.T) {
	m := NewBehaviourManager()
	m.FixedStep = 0.25
	b := &countingBehaviour{}
	m.Add(b)

	m.UpdateAll(0.1)
	if b.fixed != 0 {
		t.Fatalf("no fixed step should run before 0.25s accumulate, got %d", b.fixed)
	}
	m.UpdateAll(0.5)
	if b.fixed != 2 {
		t.Errorf("expected 2 fixed steps after 0.6s, got %d", b.fixed)
	}
}

func TestBehaviourManagerFixedStepsCapped(t *testing.T) {
	m := NewBehaviourManager()
	m.FixedStep = 0.01
	b := &countingBehaviour{}
	m.Add(b)

	m.UpdateAll(10)
	if b.fixed != maxFixedStepsPerFrame {
		t.Errorf("expected %d fixed steps after a stall, got %d", maxFixedStepsPerFrame, b.fixed)
	}

	m.UpdateAll(0)
	if b.fixed != maxFixedStepsPerFrame {
		t.Error("the backlog should be dropped after hitting the cap")
	}
}

func TestBehaviourManagerRemove(t *testing.T) {
	m := NewBehaviourManager()
	a := &countingBehaviour{}
	b := &countingBehaviour{}
	m.Add(a)
	m.Add(b)

	m.Remove(a)
	m.UpdateAll(0.01)

	if a.updates != 0 {
		t.Error("removed behaviour should not be updated")
	}
	if b.updates != 1 {
		t.Error("remaining behaviour should still be updated")
	}
	if m.Len() != 1 {
		t.Errorf("expected 1 behaviour, got %d", m.Len())
	}
}

func TestBehaviourManagerClear(t *testing.T) {
	m := NewBehaviourManager()
	b := &countingBehaviour{}
	m.Add(b)

	m.Clear()
	m.UpdateAll(0.01)

	if b.starts != 0 || b.updates != 0 {
		t.Error("cleared behaviours should not run")
	}
}
