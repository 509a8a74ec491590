package trip

import (
	"time"

	"github.com/google/uuid"
)

// TopicTripEvents carries the outcome of every trip submission.
const TopicTripEvents = "trip.events"

const (
	EventRouteComputed = "trip.route_computed"
	EventRouteFailed   = "trip.route_failed"
)

// RouteComputedEvent is published after a successful submission.
type RouteComputedEvent struct {
	TripID     uuid.UUID  `json:"trip_id"`
	Cities     []string   `json:"cities"`
	LegsKm     []int      `json:"legs_km"`
	TotalKm    int        `json:"total_km"`
	DateOfTrip *time.Time `json:"date_of_trip,omitempty"`
	Passengers *int       `json:"passengers,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// RouteFailedEvent is published when the route could not be computed.
type RouteFailedEvent struct {
	TripID     uuid.UUID `json:"trip_id"`
	Cities     []string  `json:"cities"`
	Reason     string    `json:"reason"`
	ErrorKind  string    `json:"error_kind"`
	OccurredAt time.Time `json:"occurred_at"`
}
