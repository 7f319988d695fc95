package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/roahoki/biomechanics-website-sub001/internal/links"
)

type LinkStore interface {
	List(ctx context.Context) ([]links.Link, error)
	Upsert(ctx context.Context, l links.Link) (links.Link, error)
}

type LinksHandler struct {
	Store LinkStore
	Admin *AuthMiddleware
}

func (h *LinksHandler) Register(r *chi.Mux) {
	r.Get("/api/links/list", h.list)
	r.With(h.Admin.RequireAdmin).Post("/api/links/update", h.update)
}

func (h *LinksHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ls, err := h.Store.List(ctx)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"links": ls})
}

func (h *LinksHandler) update(w http.ResponseWriter, r *http.Request) {
	var req links.Link
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	l, err := h.Store.Upsert(ctx, req)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"link": l})
}
