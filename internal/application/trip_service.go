package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/travelplanner/service-trip/internal/domain/place"
	"github.com/travelplanner/service-trip/internal/domain/route"
	"github.com/travelplanner/service-trip/internal/domain/selection"
	"github.com/travelplanner/service-trip/internal/domain/shared"
	"github.com/travelplanner/service-trip/internal/domain/trip"
	"github.com/travelplanner/service-trip/internal/platform/kafka"
	"go.uber.org/zap"
)

const serviceName = "service-trip"

type controllerKey struct {
	tripID uuid.UUID
	field  trip.Field
}

// TripService is the application service orchestrating trip form use cases.
type TripService struct {
	sessions    trip.SessionRepository
	lookup      selection.Lookup
	engine      *DistanceEngine
	producer    kafka.Publisher
	debounce    time.Duration
	logger      *zap.Logger
	controllers sync.Map
	now         func() time.Time
}

// NewTripService creates a new TripService. debounce is the keystroke window for TypeQuery.
func NewTripService(
	sessions trip.SessionRepository,
	lookup selection.Lookup,
	engine *DistanceEngine,
	producer kafka.Publisher,
	debounce time.Duration,
	logger *zap.Logger,
) *TripService {
	return &TripService{
		sessions: sessions,
		lookup:   lookup,
		engine:   engine,
		producer: producer,
		debounce: debounce,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateTrip starts a new trip session, optionally restored from previous values.
func (s *TripService) CreateTrip(ctx context.Context, req CreateTripRequest) (*TripDTO, error) {
	session := trip.NewSession(trip.Seed{
		Origin:        req.CityOfOrigin,
		Intermediates: req.IntermediateCities,
		Destination:   req.CityOfDestination,
		Date:          req.DateOfTrip,
		Passengers:    req.NumberOfPassengers,
	})

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save trip: %w", err)
	}

	s.logger.Info("trip created", zap.String("trip_id", session.ID().String()))
	result := toTripDTO(session, s.now())
	return &result, nil
}

// GetTrip returns a trip session.
func (s *TripService) GetTrip(ctx context.Context, tripID uuid.UUID) (*TripDTO, error) {
	session, err := s.sessions.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	result := toTripDTO(session, s.now())
	return &result, nil
}

// DeleteTrip discards a trip session and its picker controllers.
func (s *TripService) DeleteTrip(ctx context.Context, tripID uuid.UUID) error {
	if _, err := s.sessions.FindByID(ctx, tripID); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	s.forgetControllers(tripID)
	return nil
}

// UpdateDetails changes the trip date and passenger count.
func (s *TripService) UpdateDetails(ctx context.Context, tripID uuid.UUID, req UpdateDetailsRequest) (*TripDTO, error) {
	session, err := s.sessions.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	session.UpdateDetails(req.DateOfTrip, req.NumberOfPassengers)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save trip: %w", err)
	}

	result := toTripDTO(session, s.now())
	return &result, nil
}

// ChangeQuery runs a lookup for the field's picker and returns the picker once it has settled.
func (s *TripService) ChangeQuery(ctx context.Context, tripID uuid.UUID, field trip.Field, text string) (*selection.State, error) {
	ctrl, err := s.controller(ctx, tripID, field)
	if err != nil {
		return nil, err
	}
	st := ctrl.QueryChanged(ctx, text)
	return &st, nil
}

// TypeQuery records a keystroke; the lookup runs once typing pauses for the debounce window.
func (s *TripService) TypeQuery(ctx context.Context, tripID uuid.UUID, field trip.Field, text string) (*selection.State, error) {
	ctrl, err := s.controller(ctx, tripID, field)
	if err != nil {
		return nil, err
	}
	ctrl.Type(ctx, text)
	st := ctrl.Picker().State()
	return &st, nil
}

// OpenPicker marks the field's picker open.
func (s *TripService) OpenPicker(ctx context.Context, tripID uuid.UUID, field trip.Field) (*selection.State, error) {
	return s.withPicker(ctx, tripID, field, func(p selection.Picker) { p.Open() })
}

// ClosePicker closes the field's picker and discards its search.
func (s *TripService) ClosePicker(ctx context.Context, tripID uuid.UUID, field trip.Field) (*selection.State, error) {
	return s.withPicker(ctx, tripID, field, func(p selection.Picker) { p.Close() })
}

// DismissError clears the lookup error shown by the field's picker.
func (s *TripService) DismissError(ctx context.Context, tripID uuid.UUID, field trip.Field) (*selection.State, error) {
	return s.withPicker(ctx, tripID, field, func(p selection.Picker) { p.DismissError() })
}

// SelectCandidate commits value into the field's picker.
func (s *TripService) SelectCandidate(ctx context.Context, tripID uuid.UUID, field trip.Field, value string) (*TripDTO, error) {
	if value == "" {
		return nil, shared.NewValidationError("value is required")
	}

	session, err := s.sessions.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	picker, err := session.Picker(field)
	if err != nil {
		return nil, err
	}

	picker.Select(place.CandidateFromValue(value))
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save trip: %w", err)
	}

	result := toTripDTO(session, s.now())
	return &result, nil
}

// RemoveCandidate drops value from a multi-value field.
func (s *TripService) RemoveCandidate(ctx context.Context, tripID uuid.UUID, field trip.Field, value string) (*TripDTO, error) {
	if !field.IsMultiple() {
		return nil, shared.NewValidationError(fmt.Sprintf("field %s holds a single value", field))
	}

	session, err := s.sessions.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	session.Intermediates().Remove(place.CandidateFromValue(value))
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save trip: %w", err)
	}

	result := toTripDTO(session, s.now())
	return &result, nil
}

// SubmitTrip validates the form and computes the route through the trip's cities.
func (s *TripService) SubmitTrip(ctx context.Context, tripID uuid.UUID) (*RouteDTO, error) {
	session, err := s.sessions.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if errs := session.ValidateForSubmit(s.now()); len(errs) > 0 {
		return nil, shared.NewFieldValidationError("trip is not ready to submit", errs)
	}

	cities, ok := session.Sequence()
	if !ok {
		return nil, shared.NewInvalidStateError("trip needs both a city of origin and a city of destination")
	}

	result, err := s.engine.ComputeRoute(ctx, cities)
	if err != nil {
		s.logger.Warn("route computation failed",
			zap.String("trip_id", tripID.String()),
			zap.Strings("cities", cities),
			zap.Error(err),
		)
		s.publishEvent(ctx, trip.TopicTripEvents, trip.EventRouteFailed, tripID.String(), trip.RouteFailedEvent{
			TripID:     tripID,
			Cities:     cities,
			Reason:     err.Error(),
			ErrorKind:  string(shared.KindOf(err)),
			OccurredAt: s.now(),
		})
		return nil, err
	}

	s.publishEvent(ctx, trip.TopicTripEvents, trip.EventRouteComputed, tripID.String(), trip.RouteComputedEvent{
		TripID:     tripID,
		Cities:     cities,
		LegsKm:     lo.Map(result.Legs, func(l route.Leg, _ int) int { return l.DistanceKm }),
		TotalKm:    result.TotalKm,
		DateOfTrip: session.Date(),
		Passengers: session.Passengers(),
		OccurredAt: s.now(),
	})

	s.logger.Info("trip submitted",
		zap.String("trip_id", tripID.String()),
		zap.Int("total_km", result.TotalKm),
	)
	dto := toRouteDTO(&tripID, cities, result)
	return &dto, nil
}

// PruneIdle deletes sessions that have not changed within ttl.
func (s *TripService) PruneIdle(ctx context.Context, ttl time.Duration) (int, error) {
	ids, err := s.sessions.PruneIdle(ctx, s.now().Add(-ttl))
	if err != nil {
		return 0, fmt.Errorf("failed to prune idle trips: %w", err)
	}
	for _, id := range ids {
		s.forgetControllers(id)
	}
	if len(ids) > 0 {
		s.logger.Info("pruned idle trips", zap.Int("count", len(ids)))
	}
	return len(ids), nil
}

// RunJanitor prunes idle sessions every interval until ctx is cancelled.
func (s *TripService) RunJanitor(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.PruneIdle(ctx, ttl); err != nil {
				s.logger.Error("trip janitor failed", zap.Error(err))
			}
		}
	}
}

// --- Helpers ---

func (s *TripService) controller(ctx context.Context, tripID uuid.UUID, field trip.Field) (*selection.Controller, error) {
	session, err := s.sessions.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	session.Touch()

	key := controllerKey{tripID: tripID, field: field}
	if ctrl, ok := s.controllers.Load(key); ok {
		return ctrl.(*selection.Controller), nil
	}

	picker, err := session.Picker(field)
	if err != nil {
		return nil, err
	}

	ctrl := selection.NewController(picker, s.lookup, s.debounce, s.logger.With(
		zap.String("trip_id", tripID.String()),
		zap.String("field", field.String()),
	))
	actual, _ := s.controllers.LoadOrStore(key, ctrl)
	return actual.(*selection.Controller), nil
}

func (s *TripService) forgetControllers(tripID uuid.UUID) {
	for _, f := range trip.Fields {
		s.controllers.Delete(controllerKey{tripID: tripID, field: f})
	}
}

func (s *TripService) withPicker(ctx context.Context, tripID uuid.UUID, field trip.Field, fn func(selection.Picker)) (*selection.State, error) {
	session, err := s.sessions.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	picker, err := session.Picker(field)
	if err != nil {
		return nil, err
	}
	session.Touch()
	fn(picker)
	st := picker.State()
	return &st, nil
}

func (s *TripService) publishEvent(ctx context.Context, topic, eventType, key string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(serviceName, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	cloudEvent.Subject = key

	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
