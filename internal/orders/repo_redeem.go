package orders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Redeem increments redeemed_qty for each requested line. The whole batch
// is validated against amounts read under lock before anything is
// written; the writes themselves carry a redeemed_qty + q <= quantity
// guard, so a concurrent redemption of the same line rolls this batch
// back instead of over-redeeming.
func (r *Repo) Redeem(ctx context.Context, orderID string, lines []RedeemLine) error {
	if orderID == "" || len(lines) == 0 {
		return fmt.Errorf("%w: nothing to redeem", ErrInvalid)
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `
		SELECT id, quantity, redeemed_qty
		FROM order_items WHERE order_id = $1
		FOR UPDATE`, orderID)
	if err != nil {
		return err
	}
	type state struct{ quantity, redeemed int }
	owned := map[int]state{}
	for rows.Next() {
		var id int
		var s state
		if err := rows.Scan(&id, &s.quantity, &s.redeemed); err != nil {
			rows.Close()
			return err
		}
		owned[id] = s
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, ln := range lines {
		s, ok := owned[ln.OrderItemID]
		if !ok {
			return fmt.Errorf("%w: item %d does not belong to order %s", ErrInvalid, ln.OrderItemID, orderID)
		}
		if ln.Quantity < 1 {
			return fmt.Errorf("%w: redemption quantity must be positive", ErrInvalid)
		}
		if s.redeemed+ln.Quantity > s.quantity {
			return fmt.Errorf("%w: item %d has %d of %d redeemed, cannot redeem %d more",
				ErrInvalid, ln.OrderItemID, s.redeemed, s.quantity, ln.Quantity)
		}
	}

	for _, ln := range lines {
		ct, err := tx.Exec(ctx, `
			UPDATE order_items SET redeemed_qty = redeemed_qty + $2
			WHERE id = $1 AND order_id = $3 AND redeemed_qty + $2 <= quantity`,
			ln.OrderItemID, ln.Quantity, orderID)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return fmt.Errorf("%w: item %d was redeemed concurrently", ErrConflict, ln.OrderItemID)
		}
	}

	return tx.Commit(ctx)
}
