package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/comanda-pos/api/internal/middleware"
	"github.com/comanda-pos/api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// QueueReader defines the station views.
// Satisfied by *service.QueueService; narrow interface for testability.
type QueueReader interface {
	ActiveQueue(ctx context.Context, businessID, stationID uuid.UUID) ([]service.StationView, error)
	CompletedQueue(ctx context.Context, businessID, stationID uuid.UUID) ([]service.StationView, error)
	AgingQueue(ctx context.Context, businessID uuid.UUID) ([]service.AgingEntry, error)
}

// StationHandler serves the read-only station screens.
type StationHandler struct {
	queues QueueReader
}

func NewStationHandler(queues QueueReader) *StationHandler {
	return &StationHandler{queues: queues}
}

// RegisterRoutes registers queue endpoints on an authenticated router.
func (h *StationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/stations/{sid}/queue/active", h.Active)
	r.Get("/stations/{sid}/queue/completed", h.Completed)
	r.Get("/queues/aging", h.Aging)
}

type stationOrderResponse struct {
	orderResponse
	AmountDue *string `json:"amount_due,omitempty"`
}

type agingEntryResponse struct {
	OrderID        uuid.UUID `json:"order_id"`
	TableName      string    `json:"table_name"`
	ZoneName       string    `json:"zone_name"`
	ExampleItem    string    `json:"example_item"`
	MinutesWaiting int       `json:"minutes_waiting"`
	CreatedAt      time.Time `json:"created_at"`
}

// Active handles GET /stations/{sid}/queue/active.
func (h *StationHandler) Active(w http.ResponseWriter, r *http.Request) {
	h.serveQueue(w, r, "active queue", h.queues.ActiveQueue)
}

// Completed handles GET /stations/{sid}/queue/completed.
func (h *StationHandler) Completed(w http.ResponseWriter, r *http.Request) {
	h.serveQueue(w, r, "completed queue", h.queues.CompletedQueue)
}

func (h *StationHandler) serveQueue(w http.ResponseWriter, r *http.Request, op string,
	list func(ctx context.Context, businessID, stationID uuid.UUID) ([]service.StationView, error)) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	stationID, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid station ID"})
		return
	}

	views, err := list(r.Context(), claims.BusinessID, stationID)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}

	resp := make([]stationOrderResponse, len(views))
	for i, v := range views {
		order := dbOrderToResponse(v.Order)
		order.Items = make([]orderItemResponse, len(v.Items))
		for j, it := range v.Items {
			order.Items[j] = dbOrderItemToResponse(it, nil)
		}
		resp[i] = stationOrderResponse{orderResponse: order}
		if v.AmountDue != "" {
			due := v.AmountDue
			resp[i].AmountDue = &due
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Aging handles GET /queues/aging.
func (h *StationHandler) Aging(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	entries, err := h.queues.AgingQueue(r.Context(), claims.BusinessID)
	if err != nil {
		writeServiceError(w, "aging queue", err)
		return
	}

	resp := make([]agingEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = agingEntryResponse{
			OrderID:        e.OrderID,
			TableName:      e.TableName,
			ZoneName:       e.ZoneName,
			ExampleItem:    e.ExampleItem,
			MinutesWaiting: e.MinutesWaiting,
			CreatedAt:      e.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
