// Package links stores the link-in-bio rows shown on the public page.
package links

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInvalid = errors.New("invalid link")

type Link struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Position int    `json:"position"`
	Visible  bool   `json:"visible"`
}

type Repo struct{ DB *pgxpool.Pool }

// List returns visible links in display order.
func (r *Repo) List(ctx context.Context) ([]Link, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, title, url, position, visible FROM links WHERE visible ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Link{}
	for rows.Next() {
		var l Link
		if err := rows.Scan(&l.ID, &l.Title, &l.URL, &l.Position, &l.Visible); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Upsert creates the link when id is zero and updates it otherwise.
func (r *Repo) Upsert(ctx context.Context, l Link) (Link, error) {
	if l.Title == "" || l.URL == "" {
		return Link{}, fmt.Errorf("%w: title and url are required", ErrInvalid)
	}
	var row pgx.Row
	if l.ID == 0 {
		row = r.DB.QueryRow(ctx, `
			INSERT INTO links(title, url, position, visible)
			VALUES ($1, $2, $3, $4)
			RETURNING id, title, url, position, visible`,
			l.Title, l.URL, l.Position, l.Visible)
	} else {
		row = r.DB.QueryRow(ctx, `
			UPDATE links SET title=$2, url=$3, position=$4, visible=$5
			WHERE id=$1
			RETURNING id, title, url, position, visible`,
			l.ID, l.Title, l.URL, l.Position, l.Visible)
	}
	var out Link
	err := row.Scan(&out.ID, &out.Title, &out.URL, &out.Position, &out.Visible)
	if errors.Is(err, pgx.ErrNoRows) {
		return Link{}, fmt.Errorf("%w: unknown link %d", ErrInvalid, l.ID)
	}
	return out, err
}
