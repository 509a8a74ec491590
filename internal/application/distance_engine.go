package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/travelplanner/service-trip/internal/domain/place"
	"github.com/travelplanner/service-trip/internal/domain/route"
	"go.uber.org/zap"
)

// DistanceEngine resolves city names and measures the route through them.
type DistanceEngine struct {
	repo   place.Repository
	faults FaultInjection
	delay  time.Duration
	logger *zap.Logger
}

// NewDistanceEngine creates a DistanceEngine.
func NewDistanceEngine(repo place.Repository, faults FaultInjection, delay time.Duration, logger *zap.Logger) *DistanceEngine {
	return &DistanceEngine{
		repo:   repo,
		faults: faults,
		delay:  delay,
		logger: logger,
	}
}

// ComputeRoute returns per-leg and total distances along cities, in order.
// Every name is resolved before any distance is computed, so a failure never yields partial legs.
func (e *DistanceEngine) ComputeRoute(ctx context.Context, cities []string) (*route.Result, error) {
	if err := sleepContext(ctx, e.delay); err != nil {
		return nil, err
	}

	if e.faults.Enabled && lo.Contains(cities, e.faults.RouteSentinel) {
		return nil, route.NewInjectedFailure(e.faults.RouteSentinel)
	}

	if len(cities) < 2 {
		return route.Empty(), nil
	}

	stops := make([]route.Stop, 0, len(cities))
	for _, name := range cities {
		rec, err := e.repo.FindByName(ctx, name)
		if err != nil {
			if errors.Is(err, place.ErrPlaceNotFound) {
				return nil, route.NewCityNotFound(name)
			}
			return nil, fmt.Errorf("failed to resolve city %q: %w", name, err)
		}
		stops = append(stops, route.Stop{
			Name:  rec.Name,
			Point: route.Point{Lat: rec.Lat, Lon: rec.Lon},
		})
	}

	result := route.Plan(stops)
	e.logger.Debug("route computed",
		zap.Strings("cities", cities),
		zap.Int("legs", len(result.Legs)),
		zap.Int("total_km", result.TotalKm),
	)
	return result, nil
}
