package selection

import (
	"github.com/samber/lo"
	"github.com/travelplanner/service-trip/internal/domain/place"
)

// Multi is a picker that holds an ordered list of distinct values.
type Multi struct {
	machine
}

// NewMulti creates a multi-value picker seeded with initial. Duplicates in initial are dropped, order kept.
func NewMulti(initial []string, notify Notifier) *Multi {
	m := &Multi{machine: newMachine(true, notify)}
	m.values = lo.Map(lo.Uniq(lo.Compact(initial)), func(v string, _ int) place.Candidate {
		return place.CandidateFromValue(v)
	})
	return m
}

// Select appends candidate and ends the search. Selecting a value already present is a no-op.
func (m *Multi) Select(candidate place.Candidate) bool {
	return m.commit(func() bool {
		if m.hasValue(candidate.Value) {
			return false
		}
		m.values = append(m.values, candidate)
		m.query = ""
		m.resetSearch()
		return true
	})
}

// Remove drops the value matching candidate and keeps the order of the rest.
func (m *Multi) Remove(candidate place.Candidate) bool {
	return m.commit(func() bool {
		if !m.hasValue(candidate.Value) {
			return false
		}
		m.values = lo.Reject(m.values, func(c place.Candidate, _ int) bool {
			return c.Value == candidate.Value
		})
		return true
	})
}
