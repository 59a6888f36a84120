package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repo struct{ DB *pgxpool.Pool }

var _ Store = (*Repo)(nil)

// Save writes the order and its line items in one transaction. It returns
// only after the commit, so callers can publish on a nil error.
func (r *Repo) Save(ctx context.Context, o Order) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO orders(order_number, created_at)
		VALUES ($1, $2)`, o.OrderNumber, o.CreatedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for i, it := range o.LineItems {
		batch.Queue(`
			INSERT INTO order_line_items(order_number, position, sku_code, price, quantity)
			VALUES ($1, $2, $3, $4::text::numeric, $5)`,
			o.OrderNumber, i, it.SKUCode, it.Price.String(), it.Quantity)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert line items: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *Repo) FindByID(ctx context.Context, orderNumber string) (Order, error) {
	var o Order
	err := r.DB.QueryRow(ctx, `SELECT order_number, created_at FROM orders WHERE order_number=$1`, orderNumber).
		Scan(&o.OrderNumber, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrOrderNotFound
	}
	if err != nil {
		return Order{}, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT sku_code, price::text, quantity
		FROM order_line_items WHERE order_number=$1 ORDER BY position`, orderNumber)
	if err != nil {
		return Order{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it    OrderLineItem
			price string
		)
		if err := rows.Scan(&it.SKUCode, &price, &it.Quantity); err != nil {
			return Order{}, err
		}
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return Order{}, fmt.Errorf("parse price %q: %w", price, err)
		}
		o.LineItems = append(o.LineItems, it)
	}
	return o, rows.Err()
}

func (r *Repo) FindAll(ctx context.Context) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT o.order_number, o.created_at, li.sku_code, li.price::text, li.quantity
		FROM orders o
		JOIN order_line_items li ON li.order_number = o.order_number
		ORDER BY o.created_at, o.order_number, li.position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var (
			number    string
			createdAt time.Time
			it        OrderLineItem
			price     string
		)
		if err := rows.Scan(&number, &createdAt, &it.SKUCode, &price, &it.Quantity); err != nil {
			return nil, err
		}
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse price %q: %w", price, err)
		}
		if n := len(out); n == 0 || out[n-1].OrderNumber != number {
			out = append(out, Order{OrderNumber: number, CreatedAt: createdAt})
		}
		last := &out[len(out)-1]
		last.LineItems = append(last.LineItems, it)
	}
	return out, rows.Err()
}
