package selection

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelplanner/service-trip/internal/domain/place"
	"go.uber.org/zap"
)

var cities = []string{"Paris", "Pau", "Lyon", "Lille", "Limoges", "Marseille"}

// fakeLookup answers from a fixed list. A gate per query, when present, holds the answer back.
type fakeLookup struct {
	mu      sync.Mutex
	queries []string
	gates   map[string]chan struct{}
}

func (f *fakeLookup) Search(ctx context.Context, query string) ([]place.Candidate, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	gate := f.gates[query]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if query == "fail" {
		return nil, place.NewLookupFailure(query)
	}
	var out []place.Candidate
	for _, c := range cities {
		if strings.HasPrefix(strings.ToLower(c), strings.ToLower(query)) {
			out = append(out, place.CandidateFromValue(c))
		}
	}
	return out, nil
}

func (f *fakeLookup) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.queries...)
}

func TestController_QueryChanged(t *testing.T) {
	lookup := &fakeLookup{}
	ctrl := NewController(NewSingle("", nil), lookup, 10*time.Millisecond, zap.NewNop())

	st := ctrl.QueryChanged(context.Background(), "li")

	assert.Equal(t, PhasePopulated, st.Phase)
	assert.Equal(t, cands("Lille", "Limoges"), st.Candidates)
}

func TestController_EmptyQuerySkipsLookup(t *testing.T) {
	lookup := &fakeLookup{}
	ctrl := NewController(NewSingle("", nil), lookup, 10*time.Millisecond, zap.NewNop())

	st := ctrl.QueryChanged(context.Background(), "")

	assert.Equal(t, PhaseIdle, st.Phase)
	assert.Empty(t, lookup.seen())
}

func TestController_FailurePutsPickerInFailed(t *testing.T) {
	ctrl := NewController(NewSingle("", nil), &fakeLookup{}, 10*time.Millisecond, zap.NewNop())

	st := ctrl.QueryChanged(context.Background(), "fail")

	assert.Equal(t, PhaseFailed, st.Phase)
	assert.Equal(t, `You searched with the term "fail" so the lookup has failed`, st.Error)
}

func TestController_OutOfOrderResponses(t *testing.T) {
	gate := make(chan struct{})
	lookup := &fakeLookup{gates: map[string]chan struct{}{"l": gate}}
	picker := NewSingle("", nil)
	ctrl := NewController(picker, lookup, 10*time.Millisecond, zap.NewNop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		ctrl.QueryChanged(context.Background(), "l")
	}()
	require.Eventually(t, func() bool { return len(lookup.seen()) == 1 }, time.Second, 5*time.Millisecond)

	st := ctrl.QueryChanged(context.Background(), "ly")
	assert.Equal(t, cands("Lyon"), st.Candidates)

	close(gate)
	<-done

	assert.Equal(t, cands("Lyon"), picker.State().Candidates)
	assert.Equal(t, "ly", picker.State().Query)
}

func TestController_EarlierResponseSettlesBeforeNextQuery(t *testing.T) {
	lookup := &fakeLookup{}
	picker := NewSingle("", nil)
	ctrl := NewController(picker, lookup, 10*time.Millisecond, zap.NewNop())

	first := ctrl.QueryChanged(context.Background(), "l")
	assert.Equal(t, cands("Lyon", "Lille", "Limoges"), first.Candidates)

	st := ctrl.QueryChanged(context.Background(), "li")

	assert.Equal(t, PhasePopulated, st.Phase)
	assert.Equal(t, "li", st.Query)
	assert.Equal(t, cands("Lille", "Limoges"), st.Candidates)
	assert.Equal(t, []string{"l", "li"}, lookup.seen())
}

func TestController_CancelledLookupIsAbandoned(t *testing.T) {
	lookup := &fakeLookup{gates: map[string]chan struct{}{"pa": make(chan struct{})}}
	picker := NewSingle("", nil)
	ctrl := NewController(picker, lookup, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st := ctrl.QueryChanged(ctx, "pa")

	assert.Equal(t, PhaseIdle, st.Phase)
	assert.Empty(t, st.Error)
}

func TestController_TypeDebounces(t *testing.T) {
	lookup := &fakeLookup{}
	picker := NewMulti(nil, nil)
	ctrl := NewController(picker, lookup, 30*time.Millisecond, zap.NewNop())

	for _, text := range []string{"m", "ma", "mar"} {
		ctrl.Type(context.Background(), text)
	}

	require.Eventually(t, func() bool {
		return picker.State().Phase == PhasePopulated
	}, time.Second, 5*time.Millisecond)
	ctrl.Wait()

	assert.Equal(t, []string{"mar"}, lookup.seen())
	assert.Equal(t, cands("Marseille"), picker.State().Candidates)
}

func TestController_TypeEmptyClearsImmediately(t *testing.T) {
	lookup := &fakeLookup{}
	picker := NewSingle("", nil)
	ctrl := NewController(picker, lookup, 30*time.Millisecond, zap.NewNop())

	ctrl.QueryChanged(context.Background(), "li")
	ctrl.Type(context.Background(), "lim")
	ctrl.Type(context.Background(), "")

	st := picker.State()
	assert.Equal(t, PhaseIdle, st.Phase)
	assert.Empty(t, st.Query)
	assert.Empty(t, st.Candidates)

	ctrl.Wait()

	st = picker.State()
	assert.Equal(t, PhaseIdle, st.Phase)
	assert.Empty(t, st.Candidates)
	assert.Equal(t, []string{"li"}, lookup.seen())
}

func TestController_WaitCoversPendingKeystroke(t *testing.T) {
	lookup := &fakeLookup{}
	picker := NewSingle("", nil)
	ctrl := NewController(picker, lookup, 20*time.Millisecond, zap.NewNop())

	ctrl.Type(context.Background(), "pa")
	ctrl.Type(context.Background(), "pau")
	ctrl.Wait()

	assert.Equal(t, []string{"pau"}, lookup.seen())
	assert.Equal(t, cands("Pau"), picker.State().Candidates)

	ctrl.Type(context.Background(), "ly")
	ctrl.Wait()

	assert.Equal(t, []string{"pau", "ly"}, lookup.seen())
	assert.Equal(t, cands("Lyon"), picker.State().Candidates)
}
