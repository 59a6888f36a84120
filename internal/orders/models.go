package orders

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type Order struct {
	OrderNumber string
	LineItems   []OrderLineItem
	CreatedAt   time.Time
}

type OrderLineItem struct {
	SKUCode  string
	Price    decimal.Decimal
	Quantity int
}

// InventoryStatus is what the inventory service reports for one sku code.
type InventoryStatus struct {
	SKUCode string `json:"skuCode"`
	InStock bool   `json:"inStock"`
}

type OrderLineItemInput struct {
	SKUCode  string          `json:"skuCode"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type OrderRequest struct {
	OrderLineItemsDtoList []OrderLineItemInput `json:"orderLineItemsDtoList"`
}

func (o Order) SKUCodes() []string {
	return lo.Map(o.LineItems, func(it OrderLineItem, _ int) string { return it.SKUCode })
}
