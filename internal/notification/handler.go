package notification

import (
	"context"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	kafkax "github.com/ariefcatur/go-microservices-shop/internal/kafka"
	"github.com/ariefcatur/go-microservices-shop/internal/orders"
)

// Handler turns OrderPlacedEvent messages into customer notifications.
// Sending is a log line for now.
type Handler struct {
	log    *slog.Logger
	tracer trace.Tracer
}

func NewHandler(log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{log: log, tracer: otel.Tracer("github.com/ariefcatur/go-microservices-shop/internal/notification")}
}

// HandleOrderPlaced always returns nil: undecodable or foreign messages are
// logged and committed so they are not redelivered.
func (h *Handler) HandleOrderPlaced(ctx context.Context, m kafka.Message) error {
	ctx = kafkax.ExtractTraceHeaders(ctx, m.Headers)

	if t := kafkax.HeaderValue(m, kafkax.HeaderEventType); t != "" && t != orders.EventOrderPlaced {
		h.log.WarnContext(ctx, "skipping unknown event type", "event_type", t, "offset", m.Offset)
		return nil
	}

	ev, err := kafkax.Decode[orders.OrderPlacedEvent](m.Value)
	if err != nil || ev.OrderNumber == "" {
		h.log.ErrorContext(ctx, "dropping malformed order placed event", "offset", m.Offset, "err", err)
		return nil
	}

	ctx, span := h.tracer.Start(ctx, "SendOrderPlacedNotification",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(attribute.String("order.number", ev.OrderNumber)))
	defer span.End()

	h.log.InfoContext(ctx, "sending order placed notification", "order_number", ev.OrderNumber)
	return nil
}
