package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dinehub/dinehub-api/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Envelope is the wire frame pushed to websocket clients
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// subscription ties one websocket connection to one restaurant channel
type subscription struct {
	conn         *websocket.Conn
	restaurantID uint
	userID       string
}

// broadcastMessage is an event queued for fan-out to one restaurant's clients
type broadcastMessage struct {
	restaurantID uint
	envelope     Envelope
}

// Hub is the in-memory connection registry. Each client is scoped to
// exactly one restaurant, derived from its credential at connect time; it
// never receives events for other tenants. The registry is process-local
// and rebuilt from nothing on restart.
type Hub struct {
	clients    map[uint]map[*websocket.Conn]bool // restaurantID -> connections
	register   chan subscription
	unregister chan subscription
	broadcast  chan broadcastMessage
	mu         sync.Mutex
}

// NewHub creates an empty hub; call Run in its own goroutine before use
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		broadcast:  make(chan broadcastMessage, 64),
	}
}

// Run processes registrations and broadcasts on a single loop. Broadcasts
// are written in the order they were queued, so events for one order reach
// each client in the order the order service emitted them.
func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.restaurantID] == nil {
				h.clients[sub.restaurantID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.restaurantID][sub.conn] = true
			h.mu.Unlock()
			log.Debug().Uint("restaurant_id", sub.restaurantID).Str("user_id", sub.userID).Msg("ws client registered")

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.restaurantID][sub.conn]; ok {
				delete(h.clients[sub.restaurantID], sub.conn)
				sub.conn.Close()
			}
			h.mu.Unlock()
			log.Debug().Uint("restaurant_id", sub.restaurantID).Str("user_id", sub.userID).Msg("ws client unregistered")

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[msg.restaurantID] {
				if err := conn.WriteJSON(msg.envelope); err != nil {
					// Best-effort delivery: a client we cannot write to is dropped
					log.Warn().Err(err).Uint("restaurant_id", msg.restaurantID).Msg("ws write failed, dropping client")
					conn.Close()
					delete(h.clients[msg.restaurantID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast implements services.Notifier: it queues the event for delivery
// to every client currently connected to the restaurant's channel. Clients
// of other restaurants never receive it.
func (h *Hub) Broadcast(restaurantID uint, event string, payload interface{}) {
	h.broadcast <- broadcastMessage{
		restaurantID: restaurantID,
		envelope:     Envelope{Event: event, Data: payload},
	}
}

// ClientCount reports how many connections are subscribed to a restaurant
func (h *Hub) ClientCount(restaurantID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[restaurantID])
}

// HandleWebSocket upgrades GET /api/v1/ws/orders to a websocket
// subscription. The restaurant scope comes from the validated token, never
// from the request, so a client cannot subscribe to another tenant's
// channel.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract actor from token",
			},
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}

	sub := subscription{conn: conn, restaurantID: actor.RestaurantID, userID: actor.UserID}
	h.register <- sub

	go h.readLoop(sub)
}

// readLoop drains inbound frames (the channel is push-only) and detects
// disconnects, graceful or abrupt, by the read failing.
func (h *Hub) readLoop(sub subscription) {
	defer func() { h.unregister <- sub }()

	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}
