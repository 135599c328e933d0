package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/comanda-pos/api/internal/database"
	"github.com/comanda-pos/api/internal/handler"
	"github.com/comanda-pos/api/internal/middleware"
	"github.com/comanda-pos/api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type mockQueues struct {
	activeFn    func(ctx context.Context, businessID, stationID uuid.UUID) ([]service.StationView, error)
	completedFn func(ctx context.Context, businessID, stationID uuid.UUID) ([]service.StationView, error)
	agingFn     func(ctx context.Context, businessID uuid.UUID) ([]service.AgingEntry, error)
}

func (m *mockQueues) ActiveQueue(ctx context.Context, businessID, stationID uuid.UUID) ([]service.StationView, error) {
	return m.activeFn(ctx, businessID, stationID)
}

func (m *mockQueues) CompletedQueue(ctx context.Context, businessID, stationID uuid.UUID) ([]service.StationView, error) {
	return m.completedFn(ctx, businessID, stationID)
}

func (m *mockQueues) AgingQueue(ctx context.Context, businessID uuid.UUID) ([]service.AgingEntry, error) {
	return m.agingFn(ctx, businessID)
}

func setupStationRouter(q *mockQueues) *chi.Mux {
	h := handler.NewStationHandler(q)
	r := chi.NewRouter()
	r.Use(middleware.Authenticate(testJWTSecret))
	h.RegisterRoutes(r)
	return r
}

func decodeList(t *testing.T, body []byte) []map[string]interface{} {
	t.Helper()
	var resp []map[string]interface{}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestActiveQueue(t *testing.T) {
	businessID := uuid.New()
	stationID := uuid.New()
	o := pizzaOrder(businessID, database.OrderStatusPENDING)

	q := &mockQueues{activeFn: func(ctx context.Context, bid, sid uuid.UUID) ([]service.StationView, error) {
		if bid != businessID || sid != stationID {
			return nil, fmt.Errorf("station %s: %w", sid, service.ErrNotFound)
		}
		return []service.StationView{{Order: o.Order, Items: o.Lines()}}, nil
	}}
	router := setupStationRouter(q)

	rr := doAuthRequest(t, router, "GET", "/stations/"+stationID.String()+"/queue/active", nil, testClaims(businessID))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeList(t, rr.Body.Bytes())
	if len(resp) != 1 {
		t.Fatalf("expected 1 order, got %d", len(resp))
	}
	if _, ok := resp[0]["amount_due"]; ok {
		t.Error("production queue should not carry amount_due")
	}
	if len(resp[0]["items"].([]interface{})) != 1 {
		t.Error("expected the station's line")
	}

	rr = doAuthRequest(t, router, "GET", "/stations/"+stationID.String()+"/queue/active", nil, testClaims(uuid.New()))
	if rr.Code != http.StatusNotFound {
		t.Errorf("foreign station: got %d, want 404", rr.Code)
	}
}

func TestActiveQueue_CashierAmountDue(t *testing.T) {
	businessID := uuid.New()
	o := pizzaOrder(businessID, database.OrderStatusPENDINGPAYMENT)
	q := &mockQueues{activeFn: func(ctx context.Context, bid, sid uuid.UUID) ([]service.StationView, error) {
		return []service.StationView{{Order: o.Order, Items: o.Lines(), AmountDue: "100.00"}}, nil
	}}
	router := setupStationRouter(q)

	rr := doAuthRequest(t, router, "GET", "/stations/"+uuid.New().String()+"/queue/active", nil, testClaims(businessID))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	resp := decodeList(t, rr.Body.Bytes())
	if resp[0]["amount_due"] != "100.00" {
		t.Errorf("amount_due: got %v", resp[0]["amount_due"])
	}
}

func TestCompletedQueue_Empty(t *testing.T) {
	q := &mockQueues{completedFn: func(ctx context.Context, bid, sid uuid.UUID) ([]service.StationView, error) {
		return []service.StationView{}, nil
	}}
	router := setupStationRouter(q)

	rr := doAuthRequest(t, router, "GET", "/stations/"+uuid.New().String()+"/queue/completed", nil, testClaims(uuid.New()))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if body := rr.Body.String(); body != "[]\n" {
		t.Errorf("expected empty JSON list, got %q", body)
	}
}

func TestStationQueue_InvalidID(t *testing.T) {
	router := setupStationRouter(&mockQueues{})
	rr := doAuthRequest(t, router, "GET", "/stations/cocina/queue/active", nil, testClaims(uuid.New()))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}

func TestAgingQueue(t *testing.T) {
	businessID := uuid.New()
	created := time.Now().Add(-25 * time.Minute)
	q := &mockQueues{agingFn: func(ctx context.Context, bid uuid.UUID) ([]service.AgingEntry, error) {
		return []service.AgingEntry{{
			OrderID:        uuid.New(),
			TableName:      "Mesa 4",
			ZoneName:       "Terraza",
			ExampleItem:    "Pizza Americana",
			MinutesWaiting: 25,
			CreatedAt:      created,
		}}, nil
	}}
	router := setupStationRouter(q)

	rr := doAuthRequest(t, router, "GET", "/queues/aging", nil, testClaims(businessID))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	resp := decodeList(t, rr.Body.Bytes())
	if len(resp) != 1 || resp[0]["table_name"] != "Mesa 4" || resp[0]["minutes_waiting"] != float64(25) {
		t.Errorf("unexpected response %v", resp)
	}
}
