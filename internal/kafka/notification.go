package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-microservices-shop/internal/orders"
)

type publisher interface {
	Publish(ctx context.Context, key, value []byte, headers ...kafka.Header) error
}

// OrderEvents publishes order events onto the notification topic producer.
type OrderEvents struct {
	p publisher
}

var _ orders.EventPublisher = (*OrderEvents)(nil)

func NewOrderEvents(p publisher) *OrderEvents {
	return &OrderEvents{p: p}
}

func (e *OrderEvents) PublishOrderPlaced(ctx context.Context, ev orders.OrderPlacedEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode %s: %w", orders.EventOrderPlaced, err)
	}
	headers := InjectTraceHeaders(ctx, []kafka.Header{
		{Key: HeaderEventType, Value: []byte(orders.EventOrderPlaced)},
		{Key: HeaderEventVersion, Value: []byte(orders.EventOrderPlacedVersion)},
	})
	return e.p.Publish(ctx, orders.PartitionKey(ev.OrderNumber), b, headers...)
}
