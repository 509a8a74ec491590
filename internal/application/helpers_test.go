package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/travelplanner/service-trip/internal/domain/place"
	"github.com/travelplanner/service-trip/internal/platform/kafka"
	"github.com/travelplanner/service-trip/internal/repository"
)

type published struct {
	topic string
	event kafka.CloudEvent
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic string, event kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{topic: topic, event: event})
	return p.err
}

func (p *recordingPublisher) all() []published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]published(nil), p.events...)
}

func defaultPlaceRepo(t *testing.T) *repository.MemoryPlaceRepository {
	t.Helper()
	records, err := repository.DefaultPlaces()
	require.NoError(t, err)
	return repository.NewMemoryPlaceRepository(records)
}

func values(candidates []place.Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Value
	}
	return out
}
