package orders

import "errors"

// NotInStockMessage is the client-facing text for a stock rejection.
const NotInStockMessage = "Product is not in stock, please try again later"

var (
	ErrNotInStock           = errors.New("product is not in stock")
	ErrEmptyOrder           = errors.New("order has no line items")
	ErrInventoryUnavailable = errors.New("inventory service unavailable")
	ErrOrderNotFound        = errors.New("order not found")
)
