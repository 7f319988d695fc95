package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roahoki/biomechanics-website-sub001/internal/catalog"
)

type Repo struct{ DB *pgxpool.Pool }

const orderCols = `id, buyer_name, buyer_contact, amount, status, redemption_code, created_at, updated_at`

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.BuyerName, &o.BuyerContact, &o.Amount, &o.Status,
		&o.RedemptionCode, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

// CreateOrder validates the cart and persists order + items in one
// transaction. The referenced product rows are locked first so two
// concurrent orders for the last unit cannot both pass the stock check.
func (r *Repo) CreateOrder(ctx context.Context, in CreateOrderInput) (Order, error) {
	if len(in.Items) == 0 {
		return Order{}, fmt.Errorf("%w: empty cart", ErrInvalid)
	}
	ids := make([]int, 0, len(in.Items))
	seen := map[int]bool{}
	for _, it := range in.Items {
		if it.ProductID == 0 {
			return Order{}, fmt.Errorf("%w: item is missing productId", ErrInvalid)
		}
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// serialize intake per product
	rows, err := tx.Query(ctx, `
		SELECT id, title, type, price, visible, stock_type, stock_value, max_per_order, is_yoga_add_on, created_at, updated_at
		FROM products WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`, ids)
	if err != nil {
		return Order{}, err
	}
	products := map[int]catalog.Product{}
	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Type, &p.Price, &p.Visible,
			&p.StockType, &p.StockValue, &p.MaxPerOrder, &p.IsYogaAddOn,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			rows.Close()
			return Order{}, err
		}
		products[p.ID] = p
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Order{}, err
	}

	// quantity still claimed by earlier orders, per CommitsAgainstCap:
	// created orders always, paid orders only for boolean stock (their
	// quantity-type stock is already decremented)
	committed := map[int]int{}
	crows, err := tx.Query(ctx, `
		SELECT oi.product_id, COALESCE(SUM(oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE oi.product_id = ANY($1)
		  AND (o.status = $2 OR (o.status = $3 AND p.stock_type = $4))
		GROUP BY oi.product_id`, ids, StatusCreated, StatusPaid, catalog.StockBoolean)
	if err != nil {
		return Order{}, err
	}
	for crows.Next() {
		var pid, qty int
		if err := crows.Scan(&pid, &qty); err != nil {
			crows.Close()
			return Order{}, err
		}
		committed[pid] = qty
	}
	crows.Close()
	if err := crows.Err(); err != nil {
		return Order{}, err
	}

	lines, total, err := ValidateCart(in.Items, products, committed)
	if err != nil {
		return Order{}, err
	}

	orderID := uuid.NewString()
	code := uuid.NewString()
	o, err := scanOrder(tx.QueryRow(ctx, `
		INSERT INTO orders(id, buyer_name, buyer_contact, amount, status, redemption_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+orderCols,
		orderID, in.BuyerName, in.BuyerContact, total, StatusCreated, code))
	if err != nil {
		return Order{}, err
	}

	for _, ln := range lines {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(order_id, product_id, title_snapshot, unit_price, quantity, redeemed_qty)
			VALUES ($1, $2, $3, $4, $5, 0)`,
			orderID, ln.Product.ID, ln.Product.Title, ln.Product.Price, ln.Quantity); err != nil {
			return Order{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *Repo) GetOrder(ctx context.Context, orderID string) (OrderWithItems, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id=$1`, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return OrderWithItems{}, ErrNotFound
	}
	if err != nil {
		return OrderWithItems{}, err
	}

	items, err := r.itemsFor(ctx, []string{orderID})
	if err != nil {
		return OrderWithItems{}, err
	}
	return OrderWithItems{Order: o, Items: items[orderID]}, nil
}

// ListOrders returns all orders with their items, newest first.
func (r *Repo) ListOrders(ctx context.Context) ([]OrderWithItems, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+orderCols+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []OrderWithItems{}
	ids := []string{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, OrderWithItems{Order: o, Items: []OrderItem{}})
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if its := items[out[i].ID]; its != nil {
			out[i].Items = its
		}
	}
	return out, nil
}

func (r *Repo) itemsFor(ctx context.Context, orderIDs []string) (map[string][]OrderItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, order_id, product_id, title_snapshot, unit_price, quantity, redeemed_qty
		FROM order_items WHERE order_id = ANY($1) ORDER BY id`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]OrderItem{}
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.TitleSnapshot,
			&it.UnitPrice, &it.Quantity, &it.RedeemedQty); err != nil {
			return nil, err
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

// Confirm transitions created -> paid and decrements stock for
// quantity-type items. The conditional status update makes a second
// confirm a conflict instead of a second decrement.
func (r *Repo) Confirm(ctx context.Context, orderID string) (Order, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o, err := scanOrder(tx.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id=$1 FOR UPDATE`, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	if !CanTransition(o.Status, StatusPaid) {
		return Order{}, fmt.Errorf("%w: order is already %s", ErrConflict, o.Status)
	}

	rows, err := tx.Query(ctx, `
		SELECT oi.product_id, oi.quantity, p.stock_type
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1`, orderID)
	if err != nil {
		return Order{}, err
	}
	var items []ItemStock
	for rows.Next() {
		var it ItemStock
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.StockType); err != nil {
			rows.Close()
			return Order{}, err
		}
		items = append(items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Order{}, err
	}

	// floored at zero: stock_value must never go negative
	for pid, qty := range StockDecrements(items) {
		if _, err := tx.Exec(ctx, `
			UPDATE products SET stock_value = GREATEST(stock_value - $2, 0), updated_at = now()
			WHERE id = $1`, pid, qty); err != nil {
			return Order{}, err
		}
	}

	o, err = scanOrder(tx.QueryRow(ctx, `
		UPDATE orders SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3
		RETURNING `+orderCols, orderID, StatusPaid, StatusCreated))
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, fmt.Errorf("%w: order changed concurrently", ErrConflict)
	}
	if err != nil {
		return Order{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, err
	}
	return o, nil
}

// Cancel transitions created|paid -> cancelled. Stock already decremented
// by a confirm is deliberately not restored.
func (r *Repo) Cancel(ctx context.Context, orderID string) (Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id=$1`, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	if !CanTransition(o.Status, StatusCancelled) {
		return Order{}, fmt.Errorf("%w: order is already %s", ErrConflict, o.Status)
	}

	o, err = scanOrder(r.DB.QueryRow(ctx, `
		UPDATE orders SET status = $2, updated_at = now()
		WHERE id = $1 AND status <> $2
		RETURNING `+orderCols, orderID, StatusCancelled))
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, fmt.Errorf("%w: order changed concurrently", ErrConflict)
	}
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

// SetStatus is the raw admin override. The status string is validated
// against the known lifecycle states but no transition rules or side
// effects apply.
func (r *Repo) SetStatus(ctx context.Context, orderID string, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, status)
	}
	ct, err := r.DB.Exec(ctx, `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, orderID, status)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
