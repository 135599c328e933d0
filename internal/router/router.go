package router

import (
	"log"
	"net/http"

	"github.com/comanda-pos/api/internal/config"
	"github.com/comanda-pos/api/internal/database"
	"github.com/comanda-pos/api/internal/handler"
	"github.com/comanda-pos/api/internal/idempotency"
	"github.com/comanda-pos/api/internal/intent"
	mw "github.com/comanda-pos/api/internal/middleware"
	"github.com/comanda-pos/api/internal/service"
	"github.com/comanda-pos/api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Integrations holds the optional collaborators. Leave a field nil to
// disable it.
type Integrations struct {
	// Broker receives a copy of every station ticket.
	Broker service.TicketSink
	// Idempotency rejects replayed order submissions.
	Idempotency idempotency.Claimer
	// Classifier interprets free-text orders. Defaults to the keyword matcher.
	Classifier intent.Classifier
}

// New creates a Chi router with all application routes wired up.
// Applies authentication and role-based middleware as needed.
func New(cfg *config.Config, queries *database.Queries, pool *pgxpool.Pool, hub *ws.Hub, in Integrations) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", idempotency.Header},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Services
	dispatcher := service.NewDispatcher(hub, in.Broker)
	orderService := service.NewOrderService(pool, func(db database.DBTX) service.OrderStore {
		return database.New(db)
	}, dispatcher)
	lifecycle := service.NewLifecycleService(pool, func(db database.DBTX) service.LifecycleStore {
		return database.New(db)
	}, dispatcher)
	queues := service.NewQueueService(queries, cfg.AgingThreshold)

	classifier := in.Classifier
	if classifier == nil {
		classifier = intent.NewKeyword()
	}
	parser := intent.NewParser(queries, classifier)

	guard := idempotency.Guard(in.Idempotency)

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// Station feeds authenticate through the token query param.
	r.Get("/ws/stations/{sid}", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeStation(hub, cfg.JWTSecret, queries, w, r)
	})

	// Customer-facing routes (no auth)
	publicHandler := handler.NewPublicHandler(queries, orderService, lifecycle, parser)
	r.Route("/public", func(r chi.Router) {
		publicHandler.RegisterRoutes(r, guard)
	})

	// Staff routes
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		orderHandler := handler.NewOrderHandler(orderService, lifecycle, queries)
		r.Route("/orders", func(r chi.Router) {
			orderHandler.RegisterRoutes(r, guard)
		})

		stationHandler := handler.NewStationHandler(queues)
		stationHandler.RegisterRoutes(r)
	})

	log.Println("Router initialized with all handlers")
	return r
}
