package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/comanda-pos/api/internal/database"
	"github.com/comanda-pos/api/internal/enum"
	"github.com/comanda-pos/api/internal/middleware"
	"github.com/comanda-pos/api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// OrderSubmitter defines the service method behind order creation.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, req service.SubmitOrderRequest) (*service.SubmitResult, error)
}

// OrderLifecycle defines the service methods for orders that already exist.
// Satisfied by *service.LifecycleService.
type OrderLifecycle interface {
	GetOrderDetail(ctx context.Context, businessID, orderID uuid.UUID) (*service.OrderResult, error)
	ConfirmPayment(ctx context.Context, businessID, orderID uuid.UUID) (*service.OrderResult, error)
	TransitionState(ctx context.Context, businessID, orderID uuid.UUID, status string) (database.Order, error)
	DeleteOrder(ctx context.Context, businessID, orderID uuid.UUID) error
}

// BusinessStore reads the business record that decides the payment mode.
type BusinessStore interface {
	GetBusiness(ctx context.Context, id uuid.UUID) (database.Business, error)
}

// TableStore looks up a table through its zone's business.
type TableStore interface {
	GetDiningTable(ctx context.Context, arg database.GetDiningTableParams) (database.DiningTable, error)
}

// VenueStore reads the business and its seating, always scoped to the
// caller's business. Satisfied by *database.Queries.
type VenueStore interface {
	BusinessStore
	TableStore
	GetZone(ctx context.Context, arg database.GetZoneParams) (database.Zone, error)
}

// OrderHandler handles the staff order endpoints.
type OrderHandler struct {
	orders    OrderSubmitter
	lifecycle OrderLifecycle
	venues    VenueStore
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders OrderSubmitter, lifecycle OrderLifecycle, venues VenueStore) *OrderHandler {
	return &OrderHandler{orders: orders, lifecycle: lifecycle, venues: venues}
}

// RegisterRoutes registers order endpoints on the given Chi router.
// Expected to be mounted at /orders behind Authenticate. submitGuards wrap
// only the create endpoint.
func (h *OrderHandler) RegisterRoutes(r chi.Router, submitGuards ...func(http.Handler) http.Handler) {
	r.With(submitGuards...).Post("/", h.Submit)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/confirm-payment", h.ConfirmPayment)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.With(middleware.RequireRole(enum.UserRoleOwner, enum.UserRoleManager)).Delete("/{id}", h.Delete)
}

// --- Request / Response types ---

type submitOrderRequest struct {
	TableID       string             `json:"table_id"`
	ZoneID        string             `json:"zone_id"`
	CustomerAlias string             `json:"customer_alias"`
	Items         []orderLineRequest `json:"items"`
}

type orderLineRequest struct {
	ProductID         string   `json:"product_id"`
	VariantID         string   `json:"variant_id"`
	ModifierOptionIDs []string `json:"modifier_option_ids"`
	Quantity          int32    `json:"quantity"`
	Note              string   `json:"note"`
}

type orderResponse struct {
	ID            uuid.UUID           `json:"id"`
	BusinessID    uuid.UUID           `json:"business_id"`
	TableID       *uuid.UUID          `json:"table_id"`
	AccountID     uuid.UUID           `json:"account_id"`
	CustomerAlias *string             `json:"customer_alias"`
	Total         string              `json:"total"`
	Status        string              `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Items         []orderItemResponse `json:"items,omitempty"`
}

type orderItemResponse struct {
	ID                uuid.UUID                   `json:"id"`
	Position          int32                       `json:"position"`
	ProductID         uuid.UUID                   `json:"product_id"`
	VariantID         *uuid.UUID                  `json:"variant_id"`
	ProductName       string                      `json:"product_name"`
	VariantName       *string                     `json:"variant_name"`
	Quantity          int32                       `json:"quantity"`
	UnitPrice         string                      `json:"unit_price"`
	ModifierSurcharge string                      `json:"modifier_surcharge"`
	LineTotal         string                      `json:"line_total"`
	Note              *string                     `json:"note"`
	StationID         *uuid.UUID                  `json:"station_id"`
	Modifiers         []orderItemModifierResponse `json:"modifiers"`
}

type orderItemModifierResponse struct {
	ModifierOptionID uuid.UUID `json:"modifier_option_id"`
	Name             string    `json:"name"`
	ExtraPrice       string    `json:"extra_price"`
}

type accountResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
	Total  string    `json:"total"`
}

type submitOrderResponse struct {
	orderResponse
	Account    accountResponse `json:"account"`
	Dispatched int             `json:"dispatched_tickets"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// --- Handlers ---

// Submit handles POST /orders.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	var req submitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	tableID, err := parseOptionalUUID(req.TableID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table_id"})
		return
	}
	zoneID, err := parseOptionalUUID(req.ZoneID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid zone_id"})
		return
	}

	lines, msg := parseLines(req.Items)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	mode, ok := resolvePaymentMode(r.Context(), w, h.venues, claims.BusinessID)
	if !ok {
		return
	}

	// A table fixes the zone; the body's zone_id only counts for tableless orders.
	if tableID.Valid {
		table, ok := resolveTable(r.Context(), w, h.venues, claims.BusinessID, tableID.UUID)
		if !ok {
			return
		}
		zoneID = uuid.NullUUID{UUID: table.ZoneID, Valid: true}
	} else if zoneID.Valid {
		if !resolveZone(r.Context(), w, h.venues, claims.BusinessID, zoneID.UUID) {
			return
		}
	}

	result, err := h.orders.SubmitOrder(r.Context(), service.SubmitOrderRequest{
		BusinessID:    claims.BusinessID,
		TableID:       tableID,
		ZoneID:        zoneID,
		CustomerAlias: req.CustomerAlias,
		Mode:          mode,
		Lines:         lines,
	})
	if err != nil {
		writeSubmitError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, submitOrderResponse{
		orderResponse: toOrderResponse(&result.OrderResult),
		Account:       toAccountResponse(result.Account),
		Dispatched:    result.Dispatched,
	})
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	businessID, orderID, ok := orderScope(w, r)
	if !ok {
		return
	}

	result, err := h.lifecycle.GetOrderDetail(r.Context(), businessID, orderID)
	if err != nil {
		writeServiceError(w, "get order", err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(result))
}

// ConfirmPayment handles POST /orders/{id}/confirm-payment.
func (h *OrderHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	businessID, orderID, ok := orderScope(w, r)
	if !ok {
		return
	}

	result, err := h.lifecycle.ConfirmPayment(r.Context(), businessID, orderID)
	if err != nil {
		writeServiceError(w, "confirm payment", err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(result))
}

// UpdateStatus handles PATCH /orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	businessID, orderID, ok := orderScope(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}

	order, err := h.lifecycle.TransitionState(r.Context(), businessID, orderID, req.Status)
	if err != nil {
		writeServiceError(w, "update order status", err)
		return
	}

	writeJSON(w, http.StatusOK, dbOrderToResponse(order))
}

// Delete handles DELETE /orders/{id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	businessID, orderID, ok := orderScope(w, r)
	if !ok {
		return
	}

	if err := h.lifecycle.DeleteOrder(r.Context(), businessID, orderID); err != nil {
		writeServiceError(w, "delete order", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Helpers ---

// resolvePaymentMode loads the business's payment mode, answering the
// request itself when that fails.
func resolvePaymentMode(ctx context.Context, w http.ResponseWriter, store BusinessStore, businessID uuid.UUID) (service.PaymentMode, bool) {
	biz, err := store.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "business not found"})
			return service.PaymentMode{}, false
		}
		log.Printf("ERROR: get business %s: %v", businessID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return service.PaymentMode{}, false
	}
	if !biz.IsActive {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "business not found"})
		return service.PaymentMode{}, false
	}

	mode, err := service.PaymentModeOf(biz.PaymentMode)
	if err != nil {
		log.Printf("ERROR: business %s: %v", businessID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return service.PaymentMode{}, false
	}
	return mode, true
}

// resolveTable loads a table of the business, answering 404 for tables
// that are missing or belong to another business.
func resolveTable(ctx context.Context, w http.ResponseWriter, store TableStore, businessID, tableID uuid.UUID) (database.DiningTable, bool) {
	table, err := store.GetDiningTable(ctx, database.GetDiningTableParams{ID: tableID, BusinessID: businessID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "table not found"})
			return database.DiningTable{}, false
		}
		log.Printf("ERROR: get dining table %s: %v", tableID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return database.DiningTable{}, false
	}
	return table, true
}

// resolveZone checks that a zone belongs to the business.
func resolveZone(ctx context.Context, w http.ResponseWriter, store VenueStore, businessID, zoneID uuid.UUID) bool {
	if _, err := store.GetZone(ctx, database.GetZoneParams{ID: zoneID, BusinessID: businessID}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "zone not found"})
			return false
		}
		log.Printf("ERROR: get zone %s: %v", zoneID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return false
	}
	return true
}

// orderScope reads the caller's business and the {id} URL param.
func orderScope(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return uuid.Nil, uuid.Nil, false
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return uuid.Nil, uuid.Nil, false
	}
	return claims.BusinessID, orderID, true
}

// parseLines validates the wire shape of the items. Catalog checks happen
// in the service.
func parseLines(items []orderLineRequest) ([]service.LineRequest, string) {
	if len(items) == 0 {
		return nil, "items are required"
	}

	lines := make([]service.LineRequest, len(items))
	for i, item := range items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, formatItemError(i, "invalid product_id")
		}
		variantID, err := parseOptionalUUID(item.VariantID)
		if err != nil {
			return nil, formatItemError(i, "invalid variant_id")
		}
		if item.Quantity < 1 {
			return nil, formatItemError(i, "quantity must be >= 1")
		}

		optionIDs := make([]uuid.UUID, 0, len(item.ModifierOptionIDs))
		for _, s := range item.ModifierOptionIDs {
			id, err := uuid.Parse(s)
			if err != nil {
				return nil, formatItemError(i, "invalid modifier_option_ids")
			}
			optionIDs = append(optionIDs, id)
		}

		lines[i] = service.LineRequest{
			ProductID:         productID,
			VariantID:         variantID,
			ModifierOptionIDs: optionIDs,
			Quantity:          item.Quantity,
			Note:              item.Note,
		}
	}
	return lines, ""
}

func parseOptionalUUID(s string) (uuid.NullUUID, error) {
	if s == "" {
		return uuid.NullUUID{}, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.NullUUID{}, err
	}
	return uuid.NullUUID{UUID: id, Valid: true}, nil
}

func formatItemError(idx int, msg string) string {
	return "items[" + strconv.Itoa(idx) + "]: " + msg
}

// isValidationError checks if the error is a known validation error
// from order submission that should result in 400 Bad Request.
func isValidationError(err error) bool {
	return errors.Is(err, service.ErrEmptyOrder) ||
		errors.Is(err, service.ErrInvalidQuantity) ||
		errors.Is(err, service.ErrNotFound) ||
		errors.Is(err, service.ErrVariantRequired) ||
		errors.Is(err, service.ErrVariantMismatch)
}

func writeSubmitError(w http.ResponseWriter, err error) {
	if isValidationError(err) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeServiceError(w, "submit order", err)
}

// writeServiceError maps service errors to HTTP statuses. Anything
// unrecognised is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, pgx.ErrNoRows):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTransition):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidState), isValidationError(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "not allowed for this business"})
	default:
		log.Printf("ERROR: %s: %v", op, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func toOrderResponse(result *service.OrderResult) orderResponse {
	resp := dbOrderToResponse(result.Order)
	resp.Items = make([]orderItemResponse, len(result.Items))
	for i, it := range result.Items {
		resp.Items[i] = dbOrderItemToResponse(it.Item, it.Modifiers)
	}
	return resp
}

func dbOrderToResponse(o database.Order) orderResponse {
	return orderResponse{
		ID:            o.ID,
		BusinessID:    o.BusinessID,
		TableID:       uuidPtr(o.TableID),
		AccountID:     o.AccountID,
		CustomerAlias: textPtr(o.CustomerAlias),
		Total:         service.NumericString(o.Total),
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func dbOrderItemToResponse(it database.OrderItem, mods []database.OrderItemModifier) orderItemResponse {
	modResps := make([]orderItemModifierResponse, len(mods))
	for i, m := range mods {
		modResps[i] = orderItemModifierResponse{
			ModifierOptionID: m.ModifierOptionID,
			Name:             m.OptionName,
			ExtraPrice:       service.NumericString(m.ExtraPrice),
		}
	}
	return orderItemResponse{
		ID:                it.ID,
		Position:          it.Position,
		ProductID:         it.ProductID,
		VariantID:         uuidPtr(it.VariantID),
		ProductName:       it.ProductName,
		VariantName:       textPtr(it.VariantName),
		Quantity:          it.Quantity,
		UnitPrice:         service.NumericString(it.UnitPrice),
		ModifierSurcharge: service.NumericString(it.ModifierSurcharge),
		LineTotal:         service.LineTotal(it).StringFixed(2),
		Note:              textPtr(it.Note),
		StationID:         uuidPtr(it.StationID),
		Modifiers:         modResps,
	}
}

func toAccountResponse(a database.Account) accountResponse {
	return accountResponse{
		ID:     a.ID,
		Status: string(a.Status),
		Total:  service.NumericString(a.Total),
	}
}

func uuidPtr(id pgtype.UUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	u := uuid.UUID(id.Bytes)
	return &u
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	return &t.String
}
