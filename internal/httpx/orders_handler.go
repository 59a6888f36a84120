package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-microservices-shop/internal/orders"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, req orders.OrderRequest) (string, error)
	GetOrder(ctx context.Context, orderNumber string) (orders.Order, error)
	ListOrders(ctx context.Context) ([]orders.Order, error)
}

type OrdersHandler struct {
	Service OrderService
	Log     *slog.Logger
}

type OrderLineItemResp struct {
	SKUCode  string          `json:"skuCode"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type OrderResp struct {
	OrderNumber        string              `json:"orderNumber"`
	OrderLineItemsList []OrderLineItemResp `json:"orderLineItemsList"`
	CreatedAt          time.Time           `json:"createdAt"`
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Post("/api/order", h.placeOrder)
	r.Get("/api/order", h.listOrders)
	r.Get("/api/order/{orderNumber}", h.getOrder)
}

func (h *OrdersHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req orders.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	msg, err := h.Service.PlaceOrder(r.Context(), req)
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Service.ListOrders(ctx)
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(list, func(o orders.Order, _ int) OrderResp { return toOrderResp(o) }))
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Service.GetOrder(ctx, chi.URLParam(r, "orderNumber"))
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResp(o))
}

func (h *OrdersHandler) writeOrderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, orders.ErrNotInStock):
		writeError(w, http.StatusBadRequest, orders.NotInStockMessage)
	case errors.Is(err, orders.ErrEmptyOrder):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, orders.ErrInventoryUnavailable):
		writeError(w, http.StatusBadGateway, orders.ErrInventoryUnavailable.Error())
	case errors.Is(err, orders.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger().ErrorContext(r.Context(), "order request failed", "path", r.URL.Path, "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *OrdersHandler) logger() *slog.Logger {
	if h.Log != nil {
		return h.Log
	}
	return slog.Default()
}

func toOrderResp(o orders.Order) OrderResp {
	items := lo.Map(o.LineItems, func(it orders.OrderLineItem, _ int) OrderLineItemResp {
		return OrderLineItemResp{SKUCode: it.SKUCode, Price: it.Price, Quantity: it.Quantity}
	})
	return OrderResp{OrderNumber: o.OrderNumber, OrderLineItemsList: items, CreatedAt: o.CreatedAt}
}
