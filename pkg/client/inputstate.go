package client

// InputState describes the input changes to apply at the next physics
// tick. Binary inputs use -1 to keep their current state, analog inputs
// use a sentinel outside the extended analog range. NewInputState returns
// a state with every input unchanged; use the setters to modify the
// inputs a client cares about.
type InputState struct {
	Left       int32
	Right      int32
	Accelerate int32
	Brake      int32
	// Steer and Gas take values in [-65536, 65536]. Steer additionally
	// accepts the extended range of [-6553600, 6553600], which is not
	// reachable on physical hardware.
	Steer int32
	Gas   int32
	// PreserveSimEvents keeps the existing simulation event buffer
	// instead of clearing it before the state is applied.
	PreserveSimEvents bool
}

// NewInputState returns an input state that leaves every input unchanged.
func NewInputState() InputState {
	return InputState{
		Left:       -1,
		Right:      -1,
		Accelerate: -1,
		Brake:      -1,
		Steer:      unchangedAnalog,
		Gas:        unchangedAnalog,
	}
}

func (s *InputState) SetLeft(pressed bool) {
	s.Left = boolToInput(pressed)
}

func (s *InputState) SetRight(pressed bool) {
	s.Right = boolToInput(pressed)
}

func (s *InputState) SetAccelerate(pressed bool) {
	s.Accelerate = boolToInput(pressed)
}

func (s *InputState) SetBrake(pressed bool) {
	s.Brake = boolToInput(pressed)
}

func (s *InputState) SetSteer(value int32) {
	s.Steer = value
}

func (s *InputState) SetGas(value int32) {
	s.Gas = value
}

func boolToInput(pressed bool) int32 {
	if pressed {
		return 1
	}
	return 0
}
