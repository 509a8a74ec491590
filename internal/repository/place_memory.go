package repository

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/samber/lo"
	"github.com/travelplanner/service-trip/internal/domain/place"
)

//go:embed data/cities.json
var defaultDataset []byte

// DefaultPlaces returns the bundled city table.
func DefaultPlaces() ([]place.Record, error) {
	return place.ParseDataset(defaultDataset)
}

// LoadPlaces reads a dataset file, or the bundled table when path is empty.
func LoadPlaces(path string) ([]place.Record, error) {
	if path == "" {
		return DefaultPlaces()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read place dataset %s: %w", path, err)
	}
	return place.ParseDataset(raw)
}

// MemoryPlaceRepository keeps the place table in process memory, in load order.
type MemoryPlaceRepository struct {
	mu      sync.RWMutex
	records []place.Record
}

// NewMemoryPlaceRepository creates a repository over a copy of records.
func NewMemoryPlaceRepository(records []place.Record) *MemoryPlaceRepository {
	return &MemoryPlaceRepository{records: append([]place.Record{}, records...)}
}

// SearchPrefix scans the table for names starting with prefix.
func (r *MemoryPlaceRepository) SearchPrefix(_ context.Context, prefix string) ([]place.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Filter(r.records, func(rec place.Record, _ int) bool {
		return place.MatchesPrefix(rec.Name, prefix)
	}), nil
}

// FindByName returns the first record named name.
func (r *MemoryPlaceRepository) FindByName(_ context.Context, name string) (*place.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := lo.Find(r.records, func(rec place.Record) bool { return rec.Name == name })
	if !ok {
		return nil, place.NewPlaceNotFound(name)
	}
	return &rec, nil
}

// Upsert replaces the first record named rec.Name or appends rec.
func (r *MemoryPlaceRepository) Upsert(_ context.Context, rec place.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, idx, ok := lo.FindIndexOf(r.records, func(existing place.Record) bool { return existing.Name == rec.Name })
	if ok {
		r.records[idx] = rec
		return nil
	}
	r.records = append(r.records, rec)
	return nil
}

// Len returns the number of records.
func (r *MemoryPlaceRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
