package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

type roleMap map[string]string

func (m roleMap) Role(_ context.Context, subject string) (string, error) {
	return m[subject], nil
}

func sign(t *testing.T, sub string, key []byte) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, err := tok.SignedString(key)
	require.NoError(t, err)
	return s
}

func TestAuthenticateAdmin(t *testing.T) {
	v := &Verifier{Secret: secret, Roles: roleMap{"staff-1": RoleAdmin}}

	id, err := v.Authenticate(context.Background(), "Bearer "+sign(t, "staff-1", secret))
	require.NoError(t, err)
	assert.Equal(t, "staff-1", id.Subject)
	assert.Equal(t, RoleAdmin, id.Role)
}

func TestAuthenticateUnknownSubjectHasNoRole(t *testing.T) {
	v := &Verifier{Secret: secret, Roles: roleMap{}}

	id, err := v.Authenticate(context.Background(), "Bearer "+sign(t, "visitor", secret))
	require.NoError(t, err)
	assert.Empty(t, id.Role)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	v := &Verifier{Secret: secret, Roles: roleMap{}}

	_, err := v.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoToken)

	_, err = v.Authenticate(context.Background(), "Basic abc")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestAuthenticateWrongKey(t *testing.T) {
	v := &Verifier{Secret: secret, Roles: roleMap{}}

	_, err := v.Authenticate(context.Background(), "Bearer "+sign(t, "staff-1", []byte("other")))
	assert.ErrorIs(t, err, ErrBadToken)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	v := &Verifier{Secret: secret, Roles: roleMap{}}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "staff-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	s, err := tok.SignedString(secret)
	require.NoError(t, err)

	_, err = v.Authenticate(context.Background(), "Bearer "+s)
	assert.ErrorIs(t, err, ErrBadToken)
}

func TestAuthenticateGarbage(t *testing.T) {
	v := &Verifier{Secret: secret, Roles: roleMap{}}

	_, err := v.Authenticate(context.Background(), "Bearer not.a.token")
	assert.ErrorIs(t, err, ErrBadToken)
}
