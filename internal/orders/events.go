package orders

const (
	EventOrderPlaced        = "OrderPlacedEvent"
	EventOrderPlacedVersion = "1"
)

// OrderPlacedEvent is published once per persisted order.
type OrderPlacedEvent struct {
	OrderNumber string `json:"orderNumber"`
}
