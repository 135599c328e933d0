package ws

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/comanda-pos/api/internal/auth"
	"github.com/comanda-pos/api/internal/database"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Station screens never send data; only control frames are expected
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // authenticated through the token query parameter
	},
}

// StationLookup resolves a station inside a business.
type StationLookup interface {
	GetStation(ctx context.Context, arg database.GetStationParams) (database.ProductionStation, error)
}

// Subscription is one station screen's live connection.
type Subscription struct {
	hub       *Hub
	conn      *websocket.Conn
	stationID uuid.UUID
	send      chan []byte
}

// readPump waits for the peer to go away and then unsubscribes.
func (s *Subscription) readPump() {
	defer func() {
		s.hub.Unsubscribe(s)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WARN: station %s websocket: %v", s.stationID, err)
			}
			return
		}
	}
}

// writePump sends each queued message as its own text frame and keeps the
// connection alive with pings.
func (s *Subscription) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if !ok {
				// The hub closed the topic
				s.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeStation upgrades a station screen and subscribes it to its topic.
// Endpoint: WS /ws/stations/{sid}?token=JWT
func ServeStation(hub *Hub, jwtSecret string, stations StationLookup, w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := auth.ValidateToken(jwtSecret, tokenStr)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	stationID, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		http.Error(w, "invalid station id", http.StatusBadRequest)
		return
	}

	// Stations of other businesses look the same as missing ones.
	if _, err := stations.GetStation(r.Context(), database.GetStationParams{
		ID:         stationID,
		BusinessID: claims.BusinessID,
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, "station not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR: get station %s: %v", stationID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WARN: websocket upgrade: %v", err)
		return
	}

	sub := &Subscription{
		hub:       hub,
		conn:      conn,
		stationID: stationID,
		send:      make(chan []byte, 256),
	}
	if err := hub.Subscribe(sub); err != nil {
		conn.Close()
		return
	}

	go sub.writePump()
	go sub.readPump()
}
