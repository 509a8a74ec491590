// Package events consumes the Kafka topics this service subscribes to.
package events

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/travelplanner/service-trip/internal/application"
	"github.com/travelplanner/service-trip/internal/domain/place"
	"github.com/travelplanner/service-trip/internal/domain/shared"
	"github.com/travelplanner/service-trip/internal/platform/kafka"
	"go.uber.org/zap"
)

// PlaceEventConsumer applies place catalog changes announced by any service instance.
type PlaceEventConsumer struct {
	consumer *kafka.Consumer
	catalog  *application.CatalogService
	logger   *zap.Logger
}

// NewPlaceEventConsumer creates a new PlaceEventConsumer.
func NewPlaceEventConsumer(
	brokers []string,
	groupID string,
	catalog *application.CatalogService,
	logger *zap.Logger,
) *PlaceEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, place.TopicPlaceEvents, logger)
	return &PlaceEventConsumer{
		consumer: consumer,
		catalog:  catalog,
		logger:   logger,
	}
}

// Start begins consuming place events. This blocks until the context is cancelled.
func (c *PlaceEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *PlaceEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *PlaceEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	return c.HandleEvent(ctx, msg.Value)
}

// HandleEvent processes one raw CloudEvent. Malformed or invalid events are logged and skipped.
func (c *PlaceEventConsumer) HandleEvent(ctx context.Context, raw []byte) error {
	cloudEvent, err := kafka.ParseCloudEvent(raw)
	if err != nil {
		c.logger.Error("failed to parse cloud event from place topic",
			zap.Error(err),
			zap.String("raw", string(raw)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case place.EventPlaceUpserted:
		return c.handlePlaceUpserted(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled place event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *PlaceEventConsumer) handlePlaceUpserted(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt place.UpsertedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse place upserted data", zap.Error(err))
		return nil // Don't retry malformed data
	}

	if err := c.catalog.ApplyUpsert(ctx, evt.Record()); err != nil {
		if shared.KindOf(err) == shared.KindValidation {
			c.logger.Warn("rejecting invalid place event",
				zap.String("name", evt.Name),
				zap.Error(err),
			)
			return nil
		}
		c.logger.Error("failed to apply place event",
			zap.String("name", evt.Name),
			zap.Error(err),
		)
		return err
	}
	return nil
}
