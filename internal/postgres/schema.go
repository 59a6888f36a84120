package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
	order_number TEXT PRIMARY KEY,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS order_line_items (
	order_number TEXT NOT NULL REFERENCES orders(order_number) ON DELETE CASCADE,
	position     INT NOT NULL,
	sku_code     TEXT NOT NULL,
	price        NUMERIC NOT NULL,
	quantity     INT NOT NULL,
	PRIMARY KEY (order_number, position)
);
`

// EnsureSchema creates the order tables when they are missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
