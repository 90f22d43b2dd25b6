package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// MessagePublisher - то, что адаптеру нужно от rabbitmq_producer.Publisher.
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// FavoritesChangedDTO - тело события favorites.changed
type FavoritesChangedDTO struct {
	UserID     uuid.UUID `json:"user_id"`
	ListingID  int       `json:"listing_id,omitempty"`
	Action     string    `json:"action"`
	IDs        []int     `json:"ids"`
	OccurredAt time.Time `json:"occurred_at"`
}

type FavoritesEventsPublisher struct {
	producer   MessagePublisher
	routingKey string
}

func NewFavoritesEventsPublisher(producer MessagePublisher, routingKey string) (*FavoritesEventsPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &FavoritesEventsPublisher{producer: producer, routingKey: routingKey}, nil
}

func (a *FavoritesEventsPublisher) PublishFavoritesChanged(ctx context.Context, event domain.FavoritesEvent) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "FavoritesEventsPublisher",
		"routing_key": a.routingKey,
		"user_id":     event.UserID.String(),
	})

	ids := event.IDs
	if ids == nil {
		ids = []int{}
	}
	body, err := json.Marshal(FavoritesChangedDTO{
		UserID:     event.UserID,
		ListingID:  event.ListingID,
		Action:     string(event.Action),
		IDs:        ids,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal favorites event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers:      make(amqp.Table),
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		logger.Error("Failed to publish favorites event", err, nil)
		return fmt.Errorf("failed to publish favorites event: %w", err)
	}
	logger.Debug("Favorites event published", port.Fields{"action": event.Action})
	return nil
}
