package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/roahoki/biomechanics-website-sub001/internal/auth"
	"github.com/roahoki/biomechanics-website-sub001/internal/catalog"
	"github.com/roahoki/biomechanics-website-sub001/internal/links"
	"github.com/roahoki/biomechanics-website-sub001/internal/orders"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps domain errors onto status codes: validation 400, auth
// 401/403, not found 404, lost transitions 409. Anything else is a 500
// with the underlying message surfaced; this API only faces staff.
func writeErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, orders.ErrInvalid),
		errors.Is(err, catalog.ErrInvalid),
		errors.Is(err, links.ErrInvalid):
		code = http.StatusBadRequest
	case errors.Is(err, orders.ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, orders.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, auth.ErrNoToken), errors.Is(err, auth.ErrBadToken):
		code = http.StatusUnauthorized
	case errors.Is(err, auth.ErrForbidden):
		code = http.StatusForbidden
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
