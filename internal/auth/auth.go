// Package auth verifies bearer tokens from the identity provider and
// resolves role claims for the admin surface.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/roahoki/biomechanics-website-sub001/internal/redisx"
)

const RoleAdmin = "admin"

var (
	ErrNoToken   = errors.New("missing bearer token")
	ErrBadToken  = errors.New("invalid token")
	ErrForbidden = errors.New("admin role required")
)

type Identity struct {
	Subject string
	Role    string
}

// RoleSource resolves a subject to its role claim.
type RoleSource interface {
	Role(ctx context.Context, subject string) (string, error)
}

// StaffRepo resolves roles from the staff table. Unknown subjects get an
// empty role, not an error.
type StaffRepo struct{ DB *pgxpool.Pool }

func (r *StaffRepo) Role(ctx context.Context, subject string) (string, error) {
	var role string
	err := r.DB.QueryRow(ctx, `SELECT role FROM staff WHERE subject=$1`, subject).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return role, err
}

// Verifier checks token signatures locally and resolves roles through an
// optional Redis cache. TTL is the explicit freshness policy: 0 means
// every request goes back to the role source.
type Verifier struct {
	Secret []byte
	Roles  RoleSource
	Redis  *redis.Client
	TTL    time.Duration
}

// Authenticate parses an Authorization header value and returns the
// caller's identity with its resolved role.
func (v *Verifier) Authenticate(ctx context.Context, header string) (Identity, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if raw == "" || raw == header {
		return Identity{}, ErrNoToken
	}
	sub, err := v.subject(raw)
	if err != nil {
		return Identity{}, err
	}
	role, err := v.roleFor(ctx, sub)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Subject: sub, Role: role}, nil
}

func (v *Verifier) subject(raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.Secret, nil
	})
	if err != nil || !tok.Valid {
		return "", ErrBadToken
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrBadToken
	}
	return sub, nil
}

func (v *Verifier) roleFor(ctx context.Context, subject string) (string, error) {
	key := fmt.Sprintf(redisx.KeyRole, subject)
	if v.Redis != nil && v.TTL > 0 {
		if role, err := v.Redis.Get(ctx, key).Result(); err == nil {
			return role, nil
		}
	}
	role, err := v.Roles.Role(ctx, subject)
	if err != nil {
		return "", err
	}
	if v.Redis != nil && v.TTL > 0 {
		_ = v.Redis.Set(ctx, key, role, v.TTL).Err()
	}
	return role, nil
}
