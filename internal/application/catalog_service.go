package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/travelplanner/service-trip/internal/domain/place"
	"github.com/travelplanner/service-trip/internal/domain/shared"
	"github.com/travelplanner/service-trip/internal/platform/kafka"
	"go.uber.org/zap"
)

// UpsertPlaceRequest adds a place to the catalog or moves an existing one.
type UpsertPlaceRequest struct {
	Name string   `json:"name" binding:"required"`
	Lat  *float64 `json:"lat" binding:"required"`
	Lon  *float64 `json:"lon" binding:"required"`
}

// CatalogService maintains the place table shared by every service instance.
type CatalogService struct {
	repo     place.Repository
	cache    place.SearchCache
	producer kafka.Publisher
	logger   *zap.Logger
}

// NewCatalogService creates a CatalogService. cache may be nil.
func NewCatalogService(repo place.Repository, cache place.SearchCache, producer kafka.Publisher, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		cache:    cache,
		producer: producer,
		logger:   logger,
	}
}

// UpsertPlace stores the place locally and announces it to the other instances.
func (s *CatalogService) UpsertPlace(ctx context.Context, req UpsertPlaceRequest) (*place.Record, error) {
	if req.Lat == nil || req.Lon == nil {
		return nil, shared.NewValidationError("lat and lon are required")
	}
	rec := place.Record{Name: strings.TrimSpace(req.Name), Lat: *req.Lat, Lon: *req.Lon}

	if err := s.ApplyUpsert(ctx, rec); err != nil {
		return nil, err
	}

	evt := place.UpsertedEvent{Name: rec.Name, Lat: rec.Lat, Lon: rec.Lon, OccurredAt: time.Now().UTC()}
	ce, err := kafka.NewCloudEvent(serviceName, place.EventPlaceUpserted, evt)
	if err != nil {
		s.logger.Error("failed to create cloud event", zap.String("event_type", place.EventPlaceUpserted), zap.Error(err))
		return &rec, nil
	}
	ce.Subject = rec.Name
	if err := s.producer.PublishEvent(ctx, place.TopicPlaceEvents, ce); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", place.TopicPlaceEvents),
			zap.String("event_type", place.EventPlaceUpserted),
			zap.Error(err),
		)
	}
	return &rec, nil
}

// ApplyUpsert validates and stores rec, then drops cached searches that may now be stale.
func (s *CatalogService) ApplyUpsert(ctx context.Context, rec place.Record) error {
	if err := validateRecord(rec); err != nil {
		return err
	}

	if err := s.repo.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("failed to upsert place: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Flush(ctx); err != nil {
			s.logger.Warn("failed to flush place search cache", zap.Error(err))
		}
	}

	s.logger.Info("place upserted",
		zap.String("name", rec.Name),
		zap.Float64("lat", rec.Lat),
		zap.Float64("lon", rec.Lon),
	)
	return nil
}

func validateRecord(rec place.Record) error {
	fields := map[string]string{}
	if rec.Name == "" {
		fields["name"] = "name is required"
	}
	if rec.Lat < -90 || rec.Lat > 90 {
		fields["lat"] = "lat must be between -90 and 90"
	}
	if rec.Lon < -180 || rec.Lon > 180 {
		fields["lon"] = "lon must be between -180 and 180"
	}
	if len(fields) > 0 {
		return shared.NewFieldValidationError("invalid place", fields)
	}
	return nil
}
