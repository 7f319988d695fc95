package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/roahoki/biomechanics-website-sub001/internal/kafka"
	"github.com/roahoki/biomechanics-website-sub001/internal/orders"
	"github.com/roahoki/biomechanics-website-sub001/internal/payment"
	"github.com/roahoki/biomechanics-website-sub001/internal/redisx"
)

// OrderStore is the slice of the orders repo the handler needs.
type OrderStore interface {
	CreateOrder(ctx context.Context, in orders.CreateOrderInput) (orders.Order, error)
	GetOrder(ctx context.Context, orderID string) (orders.OrderWithItems, error)
	ListOrders(ctx context.Context) ([]orders.OrderWithItems, error)
	Confirm(ctx context.Context, orderID string) (orders.Order, error)
	Cancel(ctx context.Context, orderID string) (orders.Order, error)
	SetStatus(ctx context.Context, orderID string, status orders.Status) error
	Redeem(ctx context.Context, orderID string, lines []orders.RedeemLine) error
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type OrdersHandler struct {
	Store           OrderStore
	Producer        Publisher
	Redis           *redis.Client
	Admin           *AuthMiddleware
	Service         string
	PaymentLinkBase string
}

type CreateOrderResp struct {
	OrderID        string `json:"orderId"`
	Amount         int    `json:"amount"`
	RedemptionCode string `json:"redemption_code"`
	PaymentLink    string `json:"payment_link"`
}

type RedeemReq struct {
	OrderID string              `json:"orderId"`
	Items   []orders.RedeemLine `json:"items"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/api/orders/create", h.createOrder)
	r.Get("/api/orders/{id}", h.getOrder)

	r.Group(func(r chi.Router) {
		r.Use(h.Admin.RequireAdmin)
		r.Get("/api/orders/list", h.listOrders)
		r.Post("/api/orders/{id}/confirm", h.confirmOrder)
		r.Post("/api/orders/{id}/cancel", h.cancelOrder)
		r.Post("/api/orders/{id}/status", h.setStatus)
		r.Post("/api/orders/redeem", h.redeem)
	})
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req orders.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.Store.CreateOrder(ctx, req)
	if err != nil {
		writeErr(w, err)
		return
	}

	// email is fire-and-forget: the order is committed no matter what
	// happens on the notification path
	h.publishEvent(r, orders.EventOrderCreated, o)

	writeJSON(w, http.StatusOK, CreateOrderResp{
		OrderID:        o.ID,
		Amount:         o.Amount,
		RedemptionCode: o.RedemptionCode,
		PaymentLink:    payment.Link(h.PaymentLinkBase, o.Amount),
	})
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyOrderCache, orderID)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, json.RawMessage(s))
			return
		}
	}

	o, err := h.Store.GetOrder(ctx, orderID)
	if err != nil {
		writeErr(w, err)
		return
	}
	body := map[string]any{"order": o.Order, "items": o.Items}
	if h.Redis != nil {
		if b, err := json.Marshal(body); err == nil {
			_ = h.Redis.Set(ctx, key, b, redisx.TTLOrderCache).Err()
		}
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	os, err := h.Store.ListOrders(ctx)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": os})
}

func (h *OrdersHandler) confirmOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.Store.Confirm(ctx, orderID)
	if err != nil {
		writeErr(w, err)
		return
	}
	h.dropCache(ctx, orderID)
	h.publishEvent(r, orders.EventOrderPaid, o)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "status": orders.StatusPaid})
}

func (h *OrdersHandler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.Store.Cancel(ctx, orderID)
	if err != nil {
		writeErr(w, err)
		return
	}
	h.dropCache(ctx, orderID)
	h.publishEvent(r, orders.EventOrderCancelled, o)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "status": orders.StatusCancelled})
}

func (h *OrdersHandler) setStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.SetStatus(ctx, orderID, orders.Status(req.Status)); err != nil {
		writeErr(w, err)
		return
	}
	h.dropCache(ctx, orderID)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "status": req.Status})
}

func (h *OrdersHandler) redeem(w http.ResponseWriter, r *http.Request) {
	var req RedeemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.Redeem(ctx, req.OrderID, req.Items); err != nil {
		writeErr(w, err)
		return
	}
	h.dropCache(ctx, req.OrderID)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *OrdersHandler) dropCache(ctx context.Context, orderID string) {
	if h.Redis == nil {
		return
	}
	_ = h.Redis.Del(ctx, fmt.Sprintf(redisx.KeyOrderCache, orderID)).Err()
}

func (h *OrdersHandler) publishEvent(r *http.Request, eventType string, o orders.Order) {
	if h.Producer == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: o.ID,
		Payload: kafkax.MustMarshal(orders.OrderEventPayload{
			OrderID:        o.ID,
			BuyerName:      o.BuyerName,
			BuyerContact:   o.BuyerContact,
			Amount:         o.Amount,
			Status:         string(o.Status),
			RedemptionCode: o.RedemptionCode,
		}),
	}
	h.Producer.Publish(orders.PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
