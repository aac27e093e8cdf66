package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderPlaced publishes an OrderPlaced event
func (ep *EventPublisher) PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	return ep.producer.PublishEvent(ctx, fmt.Sprintf("order-%s", event.OrderID), event)
}

// PublishOrderCancelled publishes an OrderCancelled event
func (ep *EventPublisher) PublishOrderCancelled(ctx context.Context, event *models.OrderCancelledEvent) error {
	return ep.producer.PublishEvent(ctx, fmt.Sprintf("order-%s", event.OrderID), event)
}

// PublishOrderStatusUpdated publishes an OrderStatusUpdated event
func (ep *EventPublisher) PublishOrderStatusUpdated(ctx context.Context, event *models.OrderStatusUpdatedEvent) error {
	return ep.producer.PublishEvent(ctx, fmt.Sprintf("order-%s", event.OrderID), event)
}

// PublishReviewSubmitted publishes a ReviewSubmitted event
func (ep *EventPublisher) PublishReviewSubmitted(ctx context.Context, event *models.ReviewSubmittedEvent) error {
	return ep.producer.PublishEvent(ctx, fmt.Sprintf("review-%s", event.ReviewID), event)
}

// PublishReviewModerated publishes a ReviewModerated event
func (ep *EventPublisher) PublishReviewModerated(ctx context.Context, event *models.ReviewModeratedEvent) error {
	return ep.producer.PublishEvent(ctx, fmt.Sprintf("review-%s", event.ReviewID), event)
}

// EventHandler routes incoming events to registered callbacks
type EventHandler struct {
	onOrderPlaced        func(context.Context, *models.OrderPlacedEvent) error
	onOrderCancelled     func(context.Context, *models.OrderCancelledEvent) error
	onOrderStatusUpdated func(context.Context, *models.OrderStatusUpdatedEvent) error
	onReviewSubmitted    func(context.Context, *models.ReviewSubmittedEvent) error
	onReviewModerated    func(context.Context, *models.ReviewModeratedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnOrderPlaced registers a handler for OrderPlaced events
func (eh *EventHandler) OnOrderPlaced(handler func(context.Context, *models.OrderPlacedEvent) error) {
	eh.onOrderPlaced = handler
}

// OnOrderCancelled registers a handler for OrderCancelled events
func (eh *EventHandler) OnOrderCancelled(handler func(context.Context, *models.OrderCancelledEvent) error) {
	eh.onOrderCancelled = handler
}

// OnOrderStatusUpdated registers a handler for OrderStatusUpdated events
func (eh *EventHandler) OnOrderStatusUpdated(handler func(context.Context, *models.OrderStatusUpdatedEvent) error) {
	eh.onOrderStatusUpdated = handler
}

// OnReviewSubmitted registers a handler for ReviewSubmitted events
func (eh *EventHandler) OnReviewSubmitted(handler func(context.Context, *models.ReviewSubmittedEvent) error) {
	eh.onReviewSubmitted = handler
}

// OnReviewModerated registers a handler for ReviewModerated events
func (eh *EventHandler) OnReviewModerated(handler func(context.Context, *models.ReviewModeratedEvent) error) {
	eh.onReviewModerated = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch baseEvent.EventType {
	case models.EventTypeOrderPlaced:
		if eh.onOrderPlaced != nil {
			var event models.OrderPlacedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal OrderPlaced event: %w", err)
			}
			return eh.onOrderPlaced(ctx, &event)
		}

	case models.EventTypeOrderCancelled:
		if eh.onOrderCancelled != nil {
			var event models.OrderCancelledEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal OrderCancelled event: %w", err)
			}
			return eh.onOrderCancelled(ctx, &event)
		}

	case models.EventTypeOrderStatusUpdated:
		if eh.onOrderStatusUpdated != nil {
			var event models.OrderStatusUpdatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal OrderStatusUpdated event: %w", err)
			}
			return eh.onOrderStatusUpdated(ctx, &event)
		}

	case models.EventTypeReviewSubmitted:
		if eh.onReviewSubmitted != nil {
			var event models.ReviewSubmittedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ReviewSubmitted event: %w", err)
			}
			return eh.onReviewSubmitted(ctx, &event)
		}

	case models.EventTypeReviewModerated:
		if eh.onReviewModerated != nil {
			var event models.ReviewModeratedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ReviewModerated event: %w", err)
			}
			return eh.onReviewModerated(ctx, &event)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
