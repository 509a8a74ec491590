package application

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelplanner/service-trip/internal/domain/place"
	"github.com/travelplanner/service-trip/internal/domain/shared"
	"github.com/travelplanner/service-trip/internal/repository"
	"go.uber.org/zap"
)

func TestGeoLookup_PrefixInTableOrder(t *testing.T) {
	lookup := NewGeoLookup(defaultPlaceRepo(t), nil, DefaultFaultInjection(), 0, zap.NewNop())

	got, err := lookup.Search(context.Background(), "L")
	require.NoError(t, err)
	assert.Equal(t, []string{"Lyon", "Lille", "Le Havre", "Le Mans", "Limoges", "La Rochelle"}, values(got))
	for _, c := range got {
		assert.Equal(t, c.Value, c.Label)
	}
}

func TestGeoLookup_NoMatch(t *testing.T) {
	lookup := NewGeoLookup(defaultPlaceRepo(t), nil, DefaultFaultInjection(), 0, zap.NewNop())

	got, err := lookup.Search(context.Background(), "xyz")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGeoLookup_BlankQueryReturnsImmediately(t *testing.T) {
	lookup := NewGeoLookup(defaultPlaceRepo(t), nil, DefaultFaultInjection(), time.Hour, zap.NewNop())

	got, err := lookup.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGeoLookup_SentinelFails(t *testing.T) {
	lookup := NewGeoLookup(defaultPlaceRepo(t), nil, DefaultFaultInjection(), 0, zap.NewNop())

	for _, q := range []string{"fail", "FAIL", "Fail"} {
		_, err := lookup.Search(context.Background(), q)
		require.Error(t, err)
		assert.ErrorIs(t, err, place.ErrLookupFailure)
		assert.Equal(t, shared.KindUnavailable, shared.KindOf(err))
	}
}

func TestGeoLookup_SentinelDisabled(t *testing.T) {
	lookup := NewGeoLookup(defaultPlaceRepo(t), nil, FaultInjection{}, 0, zap.NewNop())

	got, err := lookup.Search(context.Background(), "fail")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGeoLookup_DelayHonoursContext(t *testing.T) {
	lookup := NewGeoLookup(defaultPlaceRepo(t), nil, DefaultFaultInjection(), time.Hour, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := lookup.Search(ctx, "pa")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGeoLookup_DelayIsObservable(t *testing.T) {
	lookup := NewGeoLookup(defaultPlaceRepo(t), nil, DefaultFaultInjection(), 30*time.Millisecond, zap.NewNop())

	start := time.Now()
	_, err := lookup.Search(context.Background(), "pa")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestGeoLookup_UsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := repository.NewRedisSearchCache(client, time.Minute)
	places := defaultPlaceRepo(t)
	lookup := NewGeoLookup(places, cache, DefaultFaultInjection(), 0, zap.NewNop())
	ctx := context.Background()

	first, err := lookup.Search(ctx, "pa")
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris", "Pau"}, values(first))

	cached, ok, err := cache.Get(ctx, "pa")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, first, cached)

	// a cached answer is served even if the table changes underneath
	require.NoError(t, places.Upsert(ctx, place.Record{Name: "Pamiers", Lat: 43.1165, Lon: 1.6108}))
	again, err := lookup.Search(ctx, "pa")
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestGeoLookup_FallsBackWhenCacheIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := repository.NewRedisSearchCache(client, time.Minute)
	lookup := NewGeoLookup(defaultPlaceRepo(t), cache, DefaultFaultInjection(), 0, zap.NewNop())

	mr.SetError("cache unavailable")
	got, err := lookup.Search(context.Background(), "ma")
	require.NoError(t, err)
	assert.Equal(t, []string{"Marseille"}, values(got))
}
