// Package bruteforce holds the types exchanged with the server's
// bruteforce controller. The controller drives the simulation; the client
// only evaluates each physics step and reports a decision.
package bruteforce

// Target is the metric the bruteforce controller optimizes.
type Target int32

const (
	TargetFinishTime Target = iota
	TargetCheckpointTime
	TargetTrigger
	TargetDistanceSpeed
)

// Phase is the part of the bruteforce process a step belongs to.
//
// The initial phase runs at the start of the process and after each
// improvement; no inputs are modified, which makes it the right place to
// collect data about the current best solution. The search phase is when
// the controller permutes inputs and evaluates candidate solutions.
type Phase int32

const (
	PhaseInitial Phase = iota
	PhaseSearch
)

// Decision is the client's verdict for a bruteforce physics step.
type Decision int32

const (
	// DecisionContinue runs the controller's default evaluation.
	DecisionContinue Decision = iota
	// DecisionDoNothing skips any evaluation that could accept or
	// reject the candidate solution.
	DecisionDoNothing
	// DecisionAccept takes the candidate as the new best solution and
	// starts a new initial phase on the next physics step.
	DecisionAccept
	// DecisionReject discards the candidate and generates a new one.
	DecisionReject
	// DecisionStop ends the bruteforce process and lets the game
	// simulate the race to the end.
	DecisionStop
)

// EvaluationInfo carries the controller settings and the current
// simulation race time for one evaluation step.
type EvaluationInfo struct {
	Phase             Phase
	Target            Target
	Time              int32
	ModifiedInputsNum int32
	InputsMinTime     int32
	InputsMaxTime     int32
	MaxSteerDiff      int32
	MaxTimeDiff       int32
	OverrideStopTime  int32
	SearchForever     bool
	InputsExtendSteer bool
}

// NewEvaluationInfo returns an EvaluationInfo with the controller's
// defaults (all limits unset).
func NewEvaluationInfo() EvaluationInfo {
	return EvaluationInfo{
		Phase:             PhaseInitial,
		Target:            TargetFinishTime,
		ModifiedInputsNum: -1,
		InputsMinTime:     -1,
		InputsMaxTime:     -1,
		MaxSteerDiff:      -1,
		MaxTimeDiff:       -1,
		OverrideStopTime:  -1,
	}
}

// EvaluationResponse is the reply to an evaluation step.
//
// With DecisionReject the client may modify the inputs itself and set
// RewindTime to ten milliseconds before the first changed input;
// otherwise the controller randomizes inputs according to its settings.
type EvaluationResponse struct {
	Decision   Decision
	RewindTime int32
}

// NewEvaluationResponse returns the default response: continue with no
// explicit rewind.
func NewEvaluationResponse() EvaluationResponse {
	return EvaluationResponse{
		Decision:   DecisionContinue,
		RewindTime: -1,
	}
}
