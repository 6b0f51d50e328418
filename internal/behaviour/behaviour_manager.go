package behaviour

// DefaultFixedStep is the fixed update interval in seconds.
const DefaultFixedStep float32 = 1.0 / 60.0

// Fixed updates run at most this many times per frame so a long stall does
// not snowball into ever longer frames.
const maxFixedStepsPerFrame = 5

type PlayerBehaviour interface {
	Start()
	Update(deltaTime float32)
	UpdateFixed(step float32)
}

type BehaviourWrapper struct {
	Behaviour PlayerBehaviour
	started   bool
}

type BehaviourManager struct {
	behaviours  []BehaviourWrapper
	FixedStep   float32
	accumulator float32
}

func NewBehaviourManager() *BehaviourManager {
	return &BehaviourManager{FixedStep: DefaultFixedStep}
}

func (m *BehaviourManager) Add(behaviour PlayerBehaviour) {
	m.behaviours = append(m.behaviours, BehaviourWrapper{Behaviour: behaviour, started: false})
}

func (m *BehaviourManager) Remove(behaviour PlayerBehaviour) {
	for i := range m.behaviours {
		if m.behaviours[i].Behaviour == behaviour {
			// Remove by swapping with last element and truncating
			m.behaviours[i] = m.behaviours[len(m.behaviours)-1]
			m.behaviours = m.behaviours[:len(m.behaviours)-1]
			return
		}
	}
}

// Clear removes all behaviours from the manager
func (m *BehaviourManager) Clear() {
	m.behaviours = m.behaviours[:0]
	m.accumulator = 0
}

func (m *BehaviourManager) Len() int {
	return len(m.behaviours)
}

func (m *BehaviourManager) startPending() {
	for i := range m.behaviours {
		if !m.behaviours[i].started {
			m.behaviours[i].Behaviour.Start()
			m.behaviours[i].started = true
		}
	}
}

// UpdateAll runs one frame: Start for new behaviours, Update with the frame
// delta, then as many fixed steps as the accumulated time allows.
func (m *BehaviourManager) UpdateAll(deltaTime float32) {
	m.startPending()
	for i := range m.behaviours {
		m.behaviours[i].Behaviour.Update(deltaTime)
	}

	if m.FixedStep <= 0 {
		return
	}
	m.accumulator += deltaTime
	steps := 0
	for m.accumulator >= m.FixedStep && steps < maxFixedStepsPerFrame {
		m.UpdateAllFixed()
		m.accumulator -= m.FixedStep
		steps++
	}
	if steps == maxFixedStepsPerFrame {
		m.accumulator = 0
	}
}

func (m *BehaviourManager) UpdateAllFixed() {
	m.startPending()
	for i := range m.behaviours {
		m.behaviours[i].Behaviour.UpdateFixed(m.FixedStep)
	}
}
