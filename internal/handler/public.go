package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/comanda-pos/api/internal/database"
	"github.com/comanda-pos/api/internal/enum"
	"github.com/comanda-pos/api/internal/intent"
	"github.com/comanda-pos/api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PublicStore defines the reads behind the customer-facing endpoints.
// Satisfied by *database.Queries.
type PublicStore interface {
	BusinessStore
	TableStore
}

// CashNotifier alerts the cashier that a pending order will be paid in cash.
type CashNotifier interface {
	NotifyCashPayment(ctx context.Context, orderID uuid.UUID, alias string) (database.Order, error)
}

// OrderParser turns free text into an order intent.
// Satisfied by *intent.Parser.
type OrderParser interface {
	Parse(ctx context.Context, businessID uuid.UUID, text string) (intent.Result, error)
}

// PublicHandler serves unauthenticated customer endpoints: ordering from a
// table, parsing a spoken order, and announcing a cash payment.
type PublicHandler struct {
	store  PublicStore
	orders OrderSubmitter
	cash   CashNotifier
	parser OrderParser
}

func NewPublicHandler(store PublicStore, orders OrderSubmitter, cash CashNotifier, parser OrderParser) *PublicHandler {
	return &PublicHandler{store: store, orders: orders, cash: cash, parser: parser}
}

// RegisterRoutes registers public endpoints. Expected to be mounted at
// /public. submitGuards wrap only the table order endpoint.
func (h *PublicHandler) RegisterRoutes(r chi.Router, submitGuards ...func(http.Handler) http.Handler) {
	r.With(submitGuards...).Post("/businesses/{bid}/tables/{tid}/orders", h.TableOrder)
	r.Post("/businesses/{bid}/parse-order", h.ParseOrder)
	r.Post("/orders/{id}/cash-payment", h.CashPayment)
}

// --- Request / Response types ---

type tableOrderRequest struct {
	CustomerAlias string             `json:"customer_alias"`
	Items         []orderLineRequest `json:"items"`
}

type tableOrderResponse struct {
	Status     string    `json:"status"`
	OrderID    uuid.UUID `json:"order_id"`
	AccountID  uuid.UUID `json:"account_id"`
	Total      string    `json:"total"`
	PaymentURL string    `json:"payment_url,omitempty"`
}

type parseOrderRequest struct {
	Text string `json:"text"`
}

type cashPaymentRequest struct {
	CustomerAlias string `json:"customer_alias"`
}

type cashPaymentResponse struct {
	Status    string    `json:"status"`
	OrderID   uuid.UUID `json:"order_id"`
	AmountDue string    `json:"amount_due"`
}

// --- Handlers ---

// TableOrder handles POST /public/businesses/{bid}/tables/{tid}/orders.
func (h *PublicHandler) TableOrder(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid business ID"})
		return
	}
	tableID, err := uuid.Parse(chi.URLParam(r, "tid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table ID"})
		return
	}

	var req tableOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	lines, msg := parseLines(req.Items)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	mode, ok := resolvePaymentMode(r.Context(), w, h.store, businessID)
	if !ok {
		return
	}

	table, ok := resolveTable(r.Context(), w, h.store, businessID, tableID)
	if !ok {
		return
	}

	result, err := h.orders.SubmitOrder(r.Context(), service.SubmitOrderRequest{
		BusinessID:    businessID,
		TableID:       uuid.NullUUID{UUID: table.ID, Valid: true},
		ZoneID:        uuid.NullUUID{UUID: table.ZoneID, Valid: true},
		CustomerAlias: req.CustomerAlias,
		Mode:          mode,
		Lines:         lines,
	})
	if err != nil {
		writeSubmitError(w, err)
		return
	}

	resp := tableOrderResponse{
		Status:    enum.PublicStatusSentToKitchen,
		OrderID:   result.Order.ID,
		AccountID: result.Account.ID,
		Total:     service.NumericString(result.Order.Total),
	}
	if !mode.DispatchOnCreate() {
		resp.Status = enum.PublicStatusPaymentRequired
		resp.PaymentURL = "/pay/" + result.Account.ID.String()
	}
	writeJSON(w, http.StatusCreated, resp)
}

// ParseOrder handles POST /public/businesses/{bid}/parse-order.
func (h *PublicHandler) ParseOrder(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid business ID"})
		return
	}

	var req parseOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	result, err := h.parser.Parse(r.Context(), businessID, req.Text)
	if err != nil {
		log.Printf("ERROR: parse order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CashPayment handles POST /public/orders/{id}/cash-payment.
func (h *PublicHandler) CashPayment(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req cashPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.CustomerAlias) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "customer_alias is required"})
		return
	}

	order, err := h.cash.NotifyCashPayment(r.Context(), orderID, req.CustomerAlias)
	if err != nil {
		writeServiceError(w, "cash payment", err)
		return
	}

	writeJSON(w, http.StatusOK, cashPaymentResponse{
		Status:    enum.AlertCashPaymentPending,
		OrderID:   order.ID,
		AmountDue: service.NumericString(order.Total),
	})
}
