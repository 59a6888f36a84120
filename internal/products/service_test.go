package products

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	items []Product
	err   error
}

func (m *memStore) Save(_ context.Context, p Product, _ time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.items = append(m.items, p)
	return nil
}

func (m *memStore) FindByID(_ context.Context, id string) (Product, error) {
	for _, p := range m.items {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

func (m *memStore) FindAll(context.Context) ([]Product, error) { return m.items, nil }

func TestService_Create(t *testing.T) {
	store := &memStore{}
	svc := NewService(store)

	p, err := svc.Create(context.Background(), CreateProductRequest{
		Name:        "  iPhone 13 ",
		Description: "Apple phone",
		Price:       decimal.RequireFromString("1200.50"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "iPhone 13", p.Name)
	assert.Equal(t, "1200.5", p.Price.String())

	got, err := svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestService_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateProductRequest
	}{
		{"missing name", CreateProductRequest{Price: decimal.NewFromInt(1)}},
		{"blank name", CreateProductRequest{Name: "   ", Price: decimal.NewFromInt(1)}},
		{"negative price", CreateProductRequest{Name: "x", Price: decimal.NewFromInt(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{}
			_, err := NewService(store).Create(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidProduct)
			assert.Empty(t, store.items)
		})
	}
}

func TestService_CreateStoreError(t *testing.T) {
	boom := errors.New("redis down")
	_, err := NewService(&memStore{err: boom}).Create(context.Background(), CreateProductRequest{Name: "x"})
	require.ErrorIs(t, err, boom)
}

func TestService_GetMissing(t *testing.T) {
	_, err := NewService(&memStore{}).Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
