package orders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	SuccessMessage      = "Order Placed Successfully"
	InventoryLookupSpan = "InventoryServiceLookup"

	tracerName = "github.com/ariefcatur/go-microservices-shop/internal/orders"
)

type Store interface {
	Save(ctx context.Context, o Order) error
	FindByID(ctx context.Context, orderNumber string) (Order, error)
	FindAll(ctx context.Context) ([]Order, error)
}

type InventoryChecker interface {
	CheckStock(ctx context.Context, skuCodes []string) ([]InventoryStatus, error)
}

type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, ev OrderPlacedEvent) error
}

// Service places orders. There is no stock reservation: two concurrent
// placements for the same sku can both see it in stock and both succeed.
type Service struct {
	store     Store
	inventory InventoryChecker
	events    EventPublisher

	tracer         trace.Tracer
	log            *slog.Logger
	newOrderNumber func() string
	now            func() time.Time
}

type Option func(*Service)

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(store Store, inventory InventoryChecker, events EventPublisher, opts ...Option) *Service {
	s := &Service{
		store:          store,
		inventory:      inventory,
		events:         events,
		tracer:         otel.Tracer(tracerName),
		log:            slog.Default(),
		newOrderNumber: uuid.NewString,
		now:            time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder persists the order only when every requested sku is reported in
// stock, then publishes OrderPlacedEvent. The event is never published for an
// order whose transaction did not commit.
func (s *Service) PlaceOrder(ctx context.Context, req OrderRequest) (string, error) {
	if len(req.OrderLineItemsDtoList) == 0 {
		return "", ErrEmptyOrder
	}
	order := s.buildOrder(req)

	ok, err := s.lookupStock(ctx, order.SKUCodes())
	if err != nil {
		s.log.ErrorContext(ctx, "inventory lookup failed", "order_number", order.OrderNumber, "err", err)
		return "", err
	}
	if !ok {
		s.log.ErrorContext(ctx, NotInStockMessage, "order_number", order.OrderNumber, "sku_codes", order.SKUCodes())
		return "", ErrNotInStock
	}

	if err := s.store.Save(ctx, order); err != nil {
		return "", fmt.Errorf("save order %s: %w", order.OrderNumber, err)
	}

	// fire-and-forget: the order is committed, a lost event is only logged
	if err := s.events.PublishOrderPlaced(context.WithoutCancel(ctx), OrderPlacedEvent{OrderNumber: order.OrderNumber}); err != nil {
		s.log.ErrorContext(ctx, "publish order placed failed", "order_number", order.OrderNumber, "err", err)
	}

	s.log.InfoContext(ctx, "order placed", "order_number", order.OrderNumber, "line_items", len(order.LineItems))
	return SuccessMessage, nil
}

func (s *Service) GetOrder(ctx context.Context, orderNumber string) (Order, error) {
	return s.store.FindByID(ctx, orderNumber)
}

func (s *Service) ListOrders(ctx context.Context) ([]Order, error) {
	return s.store.FindAll(ctx)
}

func (s *Service) buildOrder(req OrderRequest) Order {
	items := lo.Map(req.OrderLineItemsDtoList, func(in OrderLineItemInput, _ int) OrderLineItem {
		return OrderLineItem{SKUCode: in.SKUCode, Price: in.Price, Quantity: in.Quantity}
	})
	return Order{
		OrderNumber: s.newOrderNumber(),
		LineItems:   items,
		CreatedAt:   s.now().UTC(),
	}
}

// lookupStock wraps exactly the inventory call in the InventoryServiceLookup span.
func (s *Service) lookupStock(ctx context.Context, skuCodes []string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, InventoryLookupSpan,
		trace.WithAttributes(attribute.StringSlice("inventory.sku_codes", skuCodes)))
	defer span.End()

	statuses, err := s.inventory.CheckStock(ctx, skuCodes)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, fmt.Errorf("%w: %w", ErrInventoryUnavailable, err)
	}
	ok := AllInStock(skuCodes, statuses)
	span.SetAttributes(attribute.Bool("inventory.all_in_stock", ok))
	return ok, nil
}

// AllInStock fails closed: an empty response, any out-of-stock entry or any
// requested sku without an entry means the order cannot be placed.
func AllInStock(requested []string, statuses []InventoryStatus) bool {
	if len(statuses) == 0 {
		return false
	}
	inStock := make(map[string]bool, len(statuses))
	for _, st := range statuses {
		if !st.InStock {
			return false
		}
		inStock[st.SKUCode] = true
	}
	for _, sku := range requested {
		if !inStock[sku] {
			return false
		}
	}
	return true
}
