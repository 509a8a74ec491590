package selection

import (
	"context"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/travelplanner/service-trip/internal/domain/place"
	"go.uber.org/zap"
)

// Lookup resolves a query prefix into candidates.
type Lookup interface {
	Search(ctx context.Context, query string) ([]place.Candidate, error)
}

// Controller drives one picker against a Lookup, either per call or debounced per keystroke.
type Controller struct {
	picker    Picker
	lookup    Lookup
	logger    *zap.Logger
	debounced func(f func())

	mu      sync.Mutex
	idle    *sync.Cond
	gen     uint64
	armed   bool
	running int
}

// NewController creates a Controller. wait is the debounce window used by Type.
func NewController(picker Picker, lookup Lookup, wait time.Duration, logger *zap.Logger) *Controller {
	c := &Controller{
		picker:    picker,
		lookup:    lookup,
		logger:    logger,
		debounced: debounce.New(wait),
	}
	c.idle = sync.NewCond(&c.mu)
	return c
}

// Picker returns the controlled picker.
func (c *Controller) Picker() Picker {
	return c.picker
}

// QueryChanged runs a lookup for text and applies the result if it is still the latest query.
// Cancelling ctx while the lookup is pending abandons it.
func (c *Controller) QueryChanged(ctx context.Context, text string) State {
	ticket, ok := c.picker.Begin(text)
	if !ok {
		return c.picker.State()
	}

	candidates, err := c.lookup.Search(ctx, ticket.Query)
	if err != nil && ctx.Err() != nil {
		c.picker.Abandon(ticket)
		c.logger.Debug("lookup abandoned", zap.String("query", ticket.Query), zap.Error(ctx.Err()))
		return c.picker.State()
	}

	if !c.picker.Complete(ticket, candidates, err) {
		c.logger.Debug("discarding stale lookup response",
			zap.String("query", ticket.Query),
			zap.Uint64("seq", ticket.Seq),
		)
	} else if err != nil {
		c.logger.Warn("lookup failed", zap.String("query", ticket.Query), zap.Error(err))
	}
	return c.picker.State()
}

// Type records a keystroke. Only the last text typed within the debounce window triggers a lookup.
// An empty text clears the candidates at once and cancels the pending keystroke.
// The lookup outlives ctx's cancellation but keeps its values.
func (c *Controller) Type(ctx context.Context, text string) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.armed = text != ""
	c.idle.Broadcast()
	c.mu.Unlock()

	if text == "" {
		c.picker.Begin("")
		c.debounced(func() {})
		return
	}

	bg := context.WithoutCancel(ctx)
	c.debounced(func() {
		// A timer that fired just as a newer keystroke replaced it is ignored.
		c.mu.Lock()
		if gen != c.gen {
			c.mu.Unlock()
			return
		}
		c.armed = false
		c.running++
		c.mu.Unlock()

		defer func() {
			c.mu.Lock()
			c.running--
			c.idle.Broadcast()
			c.mu.Unlock()
		}()
		c.QueryChanged(bg, text)
	})
}

// Wait blocks until the pending keystroke, if any, has fired and its lookup has finished.
func (c *Controller) Wait() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.armed || c.running > 0 {
		c.idle.Wait()
	}
}
