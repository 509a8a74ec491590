// Package selection implements the incremental-search pickers that back the trip form fields.
//
// A picker holds the text typed so far, the candidates returned by the last lookup and the
// committed value(s). Every lookup is tagged with a Ticket; only the response carrying the
// latest ticket may change the picker, so out-of-order responses are dropped.
package selection

import (
	"errors"
	"sync"

	"github.com/samber/lo"
	"github.com/travelplanner/service-trip/internal/domain/place"
	"github.com/travelplanner/service-trip/internal/domain/shared"
)

const (
	HintEmptyQuery  = "Enter a search term"
	HintNoCandidate = "No options found"
)

// Notifier receives the full list of committed values after each commit or removal.
type Notifier func(values []string)

// Ticket identifies one issued lookup.
type Ticket struct {
	Seq   uint64
	Query string
}

// State is a point-in-time snapshot of a picker.
type State struct {
	Multiple   bool              `json:"multiple"`
	Phase      Phase             `json:"phase"`
	Query      string            `json:"query"`
	Open       bool              `json:"open"`
	Loading    bool              `json:"loading"`
	Candidates []place.Candidate `json:"candidates"`
	Error      string            `json:"error,omitempty"`
	Values     []string          `json:"values"`
	Hint       string            `json:"hint,omitempty"`
}

// Picker is the behaviour shared by single and multi pickers.
type Picker interface {
	Begin(query string) (Ticket, bool)
	Complete(ticket Ticket, candidates []place.Candidate, err error) bool
	Abandon(ticket Ticket) bool
	Open()
	Close()
	DismissError()
	Select(candidate place.Candidate) bool
	State() State
}

// machine is the search state shared by Single and Multi. All fields are guarded by mu.
type machine struct {
	mu         sync.Mutex
	multiple   bool
	phase      Phase
	query      string
	open       bool
	candidates []place.Candidate
	errMsg     string
	seq        uint64
	values     []place.Candidate
	notify     Notifier
}

func newMachine(multiple bool, notify Notifier) machine {
	return machine{
		multiple: multiple,
		phase:    PhaseIdle,
		notify:   notify,
	}
}

// MsgLookupUnavailable is shown when a lookup fails with an error that carries no user-facing message.
const MsgLookupUnavailable = "The place lookup is unavailable, please try again"

func displayMessage(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return MsgLookupUnavailable
}

// Begin records the new query text and, when it is non-empty, issues a ticket for a lookup.
// An empty query clears the candidates and invalidates any lookup still in flight.
func (m *machine) Begin(query string) (Ticket, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.query = query
	m.seq++
	if query == "" {
		m.candidates = nil
		m.moveTo(PhaseIdle)
		return Ticket{}, false
	}

	m.errMsg = ""
	m.moveTo(PhaseSearching)
	return Ticket{Seq: m.seq, Query: query}, true
}

// Complete applies a lookup response. It returns false when the ticket is stale and nothing changed.
func (m *machine) Complete(ticket Ticket, candidates []place.Candidate, err error) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.isCurrent(ticket) {
		return false
	}

	if err != nil {
		m.errMsg = displayMessage(err)
		m.candidates = nil
		return m.moveTo(PhaseFailed)
	}

	if m.multiple {
		candidates = lo.Filter(candidates, func(c place.Candidate, _ int) bool {
			return !m.hasValue(c.Value)
		})
	}
	m.candidates = append([]place.Candidate{}, candidates...)
	return m.moveTo(PhasePopulated)
}

// Abandon drops an outstanding ticket whose caller gave up. The picker returns to idle.
func (m *machine) Abandon(ticket Ticket) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.isCurrent(ticket) {
		return false
	}
	m.seq++
	m.candidates = nil
	return m.moveTo(PhaseIdle)
}

// Open marks the picker open. It never starts a lookup.
func (m *machine) Open() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
}

// Close hides the picker and discards the search. Committed values are kept.
func (m *machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.open = false
	m.query = ""
	m.resetSearch()
}

// DismissError clears the displayed lookup error.
func (m *machine) DismissError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errMsg = ""
}

// State returns a copy of the picker state.
func (m *machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := State{
		Multiple:   m.multiple,
		Phase:      m.phase,
		Query:      m.query,
		Open:       m.open,
		Loading:    m.phase.IsLoading(),
		Candidates: append([]place.Candidate{}, m.candidates...),
		Error:      m.errMsg,
		Values:     m.valueStrings(),
	}
	switch {
	case m.query == "":
		st.Hint = HintEmptyQuery
	case m.phase == PhasePopulated && len(m.candidates) == 0:
		st.Hint = HintNoCandidate
	}
	return st
}

// Values returns the committed values in order.
func (m *machine) Values() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.valueStrings()
}

func (m *machine) isCurrent(ticket Ticket) bool {
	return ticket.Seq == m.seq && m.phase == PhaseSearching
}

// resetSearch clears candidates and bumps the sequence so late responses are ignored.
func (m *machine) resetSearch() {
	m.seq++
	m.candidates = nil
	m.moveTo(PhaseIdle)
}

func (m *machine) moveTo(target Phase) bool {
	if !m.phase.CanTransitionTo(target) {
		return false
	}
	m.phase = target
	return true
}

func (m *machine) hasValue(value string) bool {
	return lo.ContainsBy(m.values, func(c place.Candidate) bool { return c.Value == value })
}

func (m *machine) valueStrings() []string {
	return lo.Map(m.values, func(c place.Candidate, _ int) string { return c.Value })
}

// commit runs fn under the lock, then notifies the owner outside it.
func (m *machine) commit(fn func() bool) bool {
	m.mu.Lock()
	changed := fn()
	values := m.valueStrings()
	notify := m.notify
	m.mu.Unlock()

	if changed && notify != nil {
		notify(values)
	}
	return changed
}
