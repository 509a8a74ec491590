package selection

import "github.com/travelplanner/service-trip/internal/domain/place"

// Single is a picker that holds at most one committed value.
type Single struct {
	machine
}

// NewSingle creates a single-value picker. A non-empty initial value is committed without a lookup.
func NewSingle(initial string, notify Notifier) *Single {
	s := &Single{machine: newMachine(false, notify)}
	if initial != "" {
		s.values = []place.Candidate{place.CandidateFromValue(initial)}
	}
	return s
}

// Select commits candidate, replacing any previous value, and ends the search.
func (s *Single) Select(candidate place.Candidate) bool {
	return s.commit(func() bool {
		s.values = []place.Candidate{candidate}
		s.query = ""
		s.resetSearch()
		return true
	})
}

// Value returns the committed value, or "" if none.
func (s *Single) Value() string {
	values := s.Values()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
