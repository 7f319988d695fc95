package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// one statement per entry: pgx's extended protocol does not accept
// multi-statement strings
var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id             SERIAL PRIMARY KEY,
		title          TEXT NOT NULL,
		type           TEXT NOT NULL CHECK (type IN ('ticket', 'item')),
		price          INTEGER NOT NULL CHECK (price >= 0),
		visible        BOOLEAN NOT NULL DEFAULT TRUE,
		stock_type     TEXT NOT NULL CHECK (stock_type IN ('quantity', 'boolean')),
		stock_value    INTEGER NOT NULL DEFAULT 0 CHECK (stock_value >= 0),
		max_per_order  INTEGER,
		is_yoga_add_on BOOLEAN NOT NULL DEFAULT FALSE,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id              UUID PRIMARY KEY,
		buyer_name      TEXT NOT NULL DEFAULT '',
		buyer_contact   TEXT NOT NULL DEFAULT '',
		amount          INTEGER NOT NULL,
		status          TEXT NOT NULL DEFAULT 'created',
		redemption_code UUID NOT NULL UNIQUE,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id             SERIAL PRIMARY KEY,
		order_id       UUID NOT NULL REFERENCES orders(id),
		product_id     INTEGER NOT NULL REFERENCES products(id),
		title_snapshot TEXT NOT NULL,
		unit_price     INTEGER NOT NULL,
		quantity       INTEGER NOT NULL CHECK (quantity > 0),
		redeemed_qty   INTEGER NOT NULL DEFAULT 0 CHECK (redeemed_qty >= 0 AND redeemed_qty <= quantity)
	)`,
	`CREATE INDEX IF NOT EXISTS order_items_product_idx ON order_items(product_id)`,
	`CREATE TABLE IF NOT EXISTS links (
		id       SERIAL PRIMARY KEY,
		title    TEXT NOT NULL,
		url      TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		visible  BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS staff (
		subject TEXT PRIMARY KEY,
		role    TEXT NOT NULL
	)`,
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
