package place

import "time"

// TopicPlaceEvents carries place catalog changes shared between service instances.
const TopicPlaceEvents = "place.events"

// EventPlaceUpserted announces a new or moved place.
const EventPlaceUpserted = "place.upserted"

// UpsertedEvent is the payload of EventPlaceUpserted.
type UpsertedEvent struct {
	Name       string    `json:"name"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Record returns the place carried by the event.
func (e UpsertedEvent) Record() Record {
	return Record{Name: e.Name, Lat: e.Lat, Lon: e.Lon}
}
