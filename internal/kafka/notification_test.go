package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/ariefcatur/go-microservices-shop/internal/orders"
)

type recordingPublisher struct {
	key     []byte
	value   []byte
	headers []kafka.Header
}

func (r *recordingPublisher) Publish(_ context.Context, key, value []byte, headers ...kafka.Header) error {
	r.key, r.value, r.headers = key, value, headers
	return nil
}

func TestOrderEvents_PublishOrderPlaced(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "place")
	defer span.End()

	rec := &recordingPublisher{}
	err := NewOrderEvents(rec).PublishOrderPlaced(ctx, orders.OrderPlacedEvent{OrderNumber: "ord-1"})
	require.NoError(t, err)

	assert.Equal(t, "ord-1", string(rec.key))
	assert.JSONEq(t, `{"orderNumber":"ord-1"}`, string(rec.value))

	m := kafka.Message{Headers: rec.headers}
	assert.Equal(t, orders.EventOrderPlaced, HeaderValue(m, HeaderEventType))
	assert.Equal(t, "1", HeaderValue(m, HeaderEventVersion))
	assert.NotEmpty(t, HeaderValue(m, "traceparent"))

	got := trace.SpanContextFromContext(ExtractTraceHeaders(context.Background(), rec.headers))
	assert.Equal(t, span.SpanContext().TraceID(), got.TraceID())
}

func TestDecode(t *testing.T) {
	ev, err := Decode[orders.OrderPlacedEvent]([]byte(`{"orderNumber":"abc"}`))
	require.NoError(t, err)
	assert.Equal(t, "abc", ev.OrderNumber)

	_, err = Decode[orders.OrderPlacedEvent]([]byte(`{`))
	require.Error(t, err)

	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}
