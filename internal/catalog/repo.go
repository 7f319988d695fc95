package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("product not found")

const productCols = `id, title, type, price, visible, stock_type, stock_value, max_per_order, is_yoga_add_on, created_at, updated_at`

type Repo struct{ DB *pgxpool.Pool }

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Title, &p.Type, &p.Price, &p.Visible,
		&p.StockType, &p.StockValue, &p.MaxPerOrder, &p.IsYogaAddOn,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// List returns products ordered by type then id. The storefront passes
// visibleOnly=true; admin listing sees everything.
func (r *Repo) List(ctx context.Context, visibleOnly bool) ([]Product, error) {
	q := `SELECT ` + productCols + ` FROM products ORDER BY type, id`
	if visibleOnly {
		q = `SELECT ` + productCols + ` FROM products WHERE visible ORDER BY type, id`
	}
	rows, err := r.DB.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, in CreateInput) (Product, error) {
	p, err := in.Validate()
	if err != nil {
		return Product{}, err
	}
	row := r.DB.QueryRow(ctx, `
		INSERT INTO products(title, type, price, visible, stock_type, stock_value, max_per_order, is_yoga_add_on)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING `+productCols,
		p.Title, p.Type, p.Price, p.Visible, p.StockType, p.StockValue, p.MaxPerOrder, p.IsYogaAddOn)
	return scanProduct(row)
}

// Update applies only the fields present in the payload.
func (r *Repo) Update(ctx context.Context, in UpdateInput) (Product, error) {
	if err := in.Validate(); err != nil {
		return Product{}, err
	}

	sets := ""
	args := []any{in.ID}
	add := func(col string, v any) {
		args = append(args, v)
		if sets != "" {
			sets += ", "
		}
		sets += fmt.Sprintf("%s = $%d", col, len(args))
	}
	if in.Title != nil {
		add("title", *in.Title)
	}
	if in.Type != nil {
		add("type", *in.Type)
	}
	if in.Price != nil {
		add("price", *in.Price)
	}
	if in.Visible != nil {
		add("visible", *in.Visible)
	}
	if in.StockType != nil {
		add("stock_type", *in.StockType)
	}
	if in.StockValue != nil {
		add("stock_value", *in.StockValue)
	}
	if in.MaxPerOrder != nil {
		add("max_per_order", *in.MaxPerOrder)
	}
	if in.IsYogaAddOn != nil {
		add("is_yoga_add_on", *in.IsYogaAddOn)
	}
	if sets == "" {
		return Product{}, fmt.Errorf("%w: no fields to update", ErrInvalid)
	}
	sets += ", updated_at = now()"

	row := r.DB.QueryRow(ctx,
		`UPDATE products SET `+sets+` WHERE id = $1 RETURNING `+productCols, args...)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}

	// keep the boolean-stock 0/1 normalization invariant after partial edits
	if p.StockType == StockBoolean && p.StockValue > 1 {
		row := r.DB.QueryRow(ctx,
			`UPDATE products SET stock_value = 1 WHERE id = $1 RETURNING `+productCols, p.ID)
		return scanProduct(row)
	}
	return p, nil
}
