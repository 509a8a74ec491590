package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/travelplanner/service-trip/internal/domain/place"
	"go.uber.org/zap"
)

// GeoLookup answers prefix searches over the place table.
type GeoLookup struct {
	repo   place.Repository
	cache  place.SearchCache
	faults FaultInjection
	delay  time.Duration
	logger *zap.Logger
}

// NewGeoLookup creates a GeoLookup. cache may be nil.
func NewGeoLookup(
	repo place.Repository,
	cache place.SearchCache,
	faults FaultInjection,
	delay time.Duration,
	logger *zap.Logger,
) *GeoLookup {
	return &GeoLookup{
		repo:   repo,
		cache:  cache,
		faults: faults,
		delay:  delay,
		logger: logger,
	}
}

// Search returns the candidates whose name starts with query, ignoring case, in table order.
// A blank query returns nothing without waiting or touching the table.
func (g *GeoLookup) Search(ctx context.Context, query string) ([]place.Candidate, error) {
	if place.IsBlankQuery(query) {
		return []place.Candidate{}, nil
	}

	if err := sleepContext(ctx, g.delay); err != nil {
		return nil, err
	}

	if g.faults.Enabled && strings.EqualFold(query, g.faults.LookupSentinel) {
		return nil, place.NewLookupFailure(query)
	}

	if g.cache != nil {
		cached, ok, err := g.cache.Get(ctx, query)
		if err != nil {
			g.logger.Warn("place search cache read failed", zap.String("query", query), zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	records, err := g.repo.SearchPrefix(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search places: %w", err)
	}
	candidates := lo.Map(records, func(r place.Record, _ int) place.Candidate {
		return place.CandidateFromRecord(r)
	})

	if g.cache != nil {
		if err := g.cache.Set(ctx, query, candidates); err != nil {
			g.logger.Warn("place search cache write failed", zap.String("query", query), zap.Error(err))
		}
	}

	g.logger.Debug("place search",
		zap.String("query", query),
		zap.Int("results", len(candidates)),
	)
	return candidates, nil
}
