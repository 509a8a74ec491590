// Package trip models the trip being assembled by one user.
package trip

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/travelplanner/service-trip/internal/domain/selection"
	"github.com/travelplanner/service-trip/internal/domain/shared"
)

const (
	MsgPositivePassengers  = "Please enter a positive number"
	MsgFutureDate          = "Selected date must be in the future"
	MsgOriginRequired      = "City of origin is required"
	MsgDestinationRequired = "City of destination is required"
	MsgDateRequired        = "Date of trip is required"
	MsgPassengersRequired  = "Number of passengers is required"
)

// Seed carries the values a session is restored from.
type Seed struct {
	Origin        string
	Intermediates []string
	Destination   string
	Date          *time.Time
	Passengers    *int
}

// Session is the trip aggregate: three pickers plus trip metadata.
// Committed picker values reach the session through the pickers' notifiers.
type Session struct {
	id            uuid.UUID
	origin        *selection.Single
	intermediates *selection.Multi
	destination   *selection.Single

	mu         sync.RWMutex
	values     map[Field][]string
	date       *time.Time
	passengers *int
	createdAt  time.Time
	updatedAt  time.Time
}

// NewSession creates a session restored from seed. Seeded values are committed without lookups.
func NewSession(seed Seed) *Session {
	now := time.Now().UTC()
	s := &Session{
		id:         uuid.New(),
		values:     make(map[Field][]string, len(Fields)),
		date:       seed.Date,
		passengers: seed.Passengers,
		createdAt:  now,
		updatedAt:  now,
	}

	s.origin = selection.NewSingle(seed.Origin, s.notifier(FieldOrigin))
	s.intermediates = selection.NewMulti(seed.Intermediates, s.notifier(FieldIntermediates))
	s.destination = selection.NewSingle(seed.Destination, s.notifier(FieldDestination))

	s.values[FieldOrigin] = s.origin.Values()
	s.values[FieldIntermediates] = s.intermediates.Values()
	s.values[FieldDestination] = s.destination.Values()
	return s
}

func (s *Session) notifier(field Field) selection.Notifier {
	return func(values []string) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.values[field] = values
		s.updatedAt = time.Now().UTC()
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the time of the last committed change.
func (s *Session) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// Picker returns the picker backing field.
func (s *Session) Picker(field Field) (selection.Picker, error) {
	switch field {
	case FieldOrigin:
		return s.origin, nil
	case FieldIntermediates:
		return s.intermediates, nil
	case FieldDestination:
		return s.destination, nil
	default:
		return nil, shared.NewValidationError("unknown trip field: " + string(field))
	}
}

// Intermediates returns the multi picker for the intermediate stops.
func (s *Session) Intermediates() *selection.Multi { return s.intermediates }

// Values returns the committed values of field.
func (s *Session) Values(field Field) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.values[field]...)
}

// Origin returns the committed city of origin, or "".
func (s *Session) Origin() string { return first(s.Values(FieldOrigin)) }

// Destination returns the committed city of destination, or "".
func (s *Session) Destination() string { return first(s.Values(FieldDestination)) }

// Date returns the trip date, if set.
func (s *Session) Date() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.date
}

// Passengers returns the passenger count, if set.
func (s *Session) Passengers() *int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.passengers
}

// Sequence returns [origin, ...intermediates, destination].
// ok is false until both origin and destination are committed.
func (s *Session) Sequence() ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	origin := first(s.values[FieldOrigin])
	destination := first(s.values[FieldDestination])
	if origin == "" || destination == "" {
		return nil, false
	}

	seq := make([]string, 0, len(s.values[FieldIntermediates])+2)
	seq = append(seq, origin)
	seq = append(seq, s.values[FieldIntermediates]...)
	seq = append(seq, destination)
	return seq, true
}

// UpdateDetails replaces the trip date and passenger count. Nil leaves a value unchanged.
func (s *Session) UpdateDetails(date *time.Time, passengers *int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if date != nil {
		d := *date
		s.date = &d
	}
	if passengers != nil {
		p := *passengers
		s.passengers = &p
	}
	s.updatedAt = time.Now().UTC()
}

// Touch marks the session as in use so idle pruning skips it.
func (s *Session) Touch() {
	s.mu.Lock()
	s.updatedAt = time.Now().UTC()
	s.mu.Unlock()
}

// Validate checks the values that are present and returns per-field messages.
func (s *Session) Validate(now time.Time) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	errs := map[string]string{}
	if s.passengers != nil && *s.passengers < 1 {
		errs["numberOfPassengers"] = MsgPositivePassengers
	}
	if s.date != nil && s.date.Before(now) {
		errs["dateOfTrip"] = MsgFutureDate
	}
	return errs
}

// ValidateForSubmit is Validate plus the presence checks required before a route is computed.
func (s *Session) ValidateForSubmit(now time.Time) map[string]string {
	errs := s.Validate(now)

	s.mu.RLock()
	defer s.mu.RUnlock()
	if first(s.values[FieldOrigin]) == "" {
		errs[FieldOrigin.String()] = MsgOriginRequired
	}
	if first(s.values[FieldDestination]) == "" {
		errs[FieldDestination.String()] = MsgDestinationRequired
	}
	if s.date == nil {
		errs["dateOfTrip"] = MsgDateRequired
	}
	if s.passengers == nil {
		errs["numberOfPassengers"] = MsgPassengersRequired
	}
	return errs
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
