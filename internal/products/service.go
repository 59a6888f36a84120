package products

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Store interface {
	Save(ctx context.Context, p Product, createdAt time.Time) error
	FindByID(ctx context.Context, id string) (Product, error)
	FindAll(ctx context.Context) ([]Product, error)
}

type Service struct {
	store Store
	log   *slog.Logger
	newID func() string
	now   func() time.Time
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		log:   slog.Default(),
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Product{}, fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if req.Price.IsNegative() {
		return Product{}, fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}

	p := Product{
		ID:          s.newID(),
		Name:        name,
		Description: req.Description,
		Price:       req.Price,
	}
	if err := s.store.Save(ctx, p, s.now()); err != nil {
		return Product{}, fmt.Errorf("save product: %w", err)
	}
	s.log.InfoContext(ctx, "product created", "product_id", p.ID)
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.store.FindAll(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	return s.store.FindByID(ctx, id)
}
