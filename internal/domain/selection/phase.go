package selection

// Phase is the lifecycle position of a picker's search.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSearching Phase = "searching"
	PhasePopulated Phase = "populated"
	PhaseFailed    Phase = "failed"
)

// validTransitions defines the picker search state machine.
// Every phase may return to idle (close, select or an emptied query); a new query may start from any phase.
var validTransitions = map[Phase][]Phase{
	PhaseIdle:      {PhaseIdle, PhaseSearching},
	PhaseSearching: {PhaseIdle, PhaseSearching, PhasePopulated, PhaseFailed},
	PhasePopulated: {PhaseIdle, PhaseSearching},
	PhaseFailed:    {PhaseIdle, PhaseSearching},
}

// CanTransitionTo returns true if a transition from this phase to the target is allowed.
func (p Phase) CanTransitionTo(target Phase) bool {
	for _, t := range validTransitions[p] {
		if t == target {
			return true
		}
	}
	return false
}

// IsLoading reports whether a lookup is outstanding.
func (p Phase) IsLoading() bool {
	return p == PhaseSearching
}

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}
