package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"

	"github.com/carmodifyx/modifyx-backend/pkg/db/models"
)

// orderCreatedEvent is the payload published when a checkout commits.
type orderCreatedEvent struct {
	OrderNumber string    `json:"orderNumber"`
	UserID      string    `json:"userId"`
	Total       string    `json:"total"`
	ItemCount   int       `json:"itemCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type pubsubPublisher struct {
	publisher *pubsub.Publisher
}

// NewPubSubPublisher wraps a Pub/Sub publisher as an EventPublisher.
// A nil publisher disables event publishing.
func NewPubSubPublisher(publisher *pubsub.Publisher) EventPublisher {
	if publisher == nil {
		return nil
	}
	return &pubsubPublisher{publisher: publisher}
}

func (p *pubsubPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	payload, err := json.Marshal(orderCreatedEvent{
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Total:       order.Total.String(),
		ItemCount:   len(order.Items),
		CreatedAt:   order.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encoding order created event: %w", err)
	}

	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"event": "order.created",
		},
	})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("publishing order created event: %w", err)
	}
	return nil
}
