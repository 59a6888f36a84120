package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("INVENTORY_TIMEOUT", "")
	t.Setenv("NOTIFICATION_WORKERS", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg := Load("order-service")
	assert.Equal(t, 5*time.Second, cfg.InventoryTimeout)
	assert.Equal(t, 4, cfg.NotificationWorkers)
	assert.Equal(t, "notificationTopic", cfg.NotificationTopic)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
}

func TestLoad_ServiceNameDefault(t *testing.T) {
	t.Setenv("SERVICE_NAME", "")
	assert.Equal(t, "product-service", Load("product-service").ServiceName)

	t.Setenv("SERVICE_NAME", "orders-eu")
	assert.Equal(t, "orders-eu", Load("product-service").ServiceName)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("INVENTORY_URL", "http://localhost:8082/")
	t.Setenv("INVENTORY_TIMEOUT", "750ms")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")
	t.Setenv("NOTIFICATION_WORKERS", "12")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4318")

	cfg := Load("order-service")
	assert.Equal(t, "http://localhost:8082", cfg.InventoryURL)
	assert.Equal(t, 750*time.Millisecond, cfg.InventoryTimeout)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 12, cfg.NotificationWorkers)
	assert.Equal(t, "http://collector:4318", cfg.OTLPEndpoint)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("INVENTORY_TIMEOUT", "soon")
	t.Setenv("NOTIFICATION_WORKERS", "-3")

	cfg := Load("order-service")
	assert.Equal(t, 5*time.Second, cfg.InventoryTimeout)
	assert.Equal(t, 4, cfg.NotificationWorkers)
}
