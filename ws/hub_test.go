package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/dinehub/dinehub-api/middleware"
	"github.com/dinehub/dinehub-api/services"
)

// mockAuthMiddleware injects validated claims the way EnsureValidToken would
// after verifying a real JWT
func mockAuthMiddleware(sub, role string, restaurantID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{Subject: sub},
			CustomClaims: &middleware.CustomClaims{
				Role:         role,
				RestaurantID: restaurantID,
			},
		}
		c.Set("user_id", sub)
		c.Set("validated_claims", claims)
		c.Next()
	}
}

// newHubServer starts a hub and an httptest server that subscribes every
// connection under the given restaurant scope
func newHubServer(t *testing.T, restaurantID uint) (*Hub, *httptest.Server) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	go hub.Run()

	router := gin.New()
	router.GET("/ws/orders", mockAuthMiddleware("auth0|ws-user", "kitchen", restaurantID), hub.HandleWebSocket)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return hub, server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	url := strings.Replace(server.URL, "http://", "ws://", 1) + "/ws/orders"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial websocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubDeliversToSubscribedClients(t *testing.T) {
	hub, server := newHubServer(t, 1)

	conn := dial(t, server)
	assert.Eventually(t, func() bool { return hub.ClientCount(1) == 1 }, time.Second, 10*time.Millisecond)

	hub.Broadcast(1, services.EventNewOrder, map[string]interface{}{"id": 42})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var envelope Envelope
	err := conn.ReadJSON(&envelope)
	assert.NoError(t, err)
	assert.Equal(t, services.EventNewOrder, envelope.Event)

	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, float64(42), data["id"])
}

func TestHubTenantScoping(t *testing.T) {
	hub, serverA := newHubServer(t, 1)

	// A second tenant's client on the same hub
	routerB := gin.New()
	routerB.GET("/ws/orders", mockAuthMiddleware("auth0|other", "kitchen", 2), hub.HandleWebSocket)
	serverB := httptest.NewServer(routerB)
	t.Cleanup(serverB.Close)

	connA := dial(t, serverA)
	connB := dial(t, serverB)
	assert.Eventually(t, func() bool {
		return hub.ClientCount(1) == 1 && hub.ClientCount(2) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast(1, services.EventOrderStatusUpdated, map[string]interface{}{"id": 7})

	connA.SetReadDeadline(time.Now().Add(time.Second))
	var envelope Envelope
	assert.NoError(t, connA.ReadJSON(&envelope))
	assert.Equal(t, services.EventOrderStatusUpdated, envelope.Event)

	// The other tenant's client must receive nothing
	connB.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := connB.ReadMessage()
	assert.Error(t, err, "Client of another restaurant must not receive the event")
	netErr, ok := err.(interface{ Timeout() bool })
	assert.True(t, ok && netErr.Timeout(), "Read should time out rather than deliver")
}

func TestHubPreservesEventOrder(t *testing.T) {
	hub, server := newHubServer(t, 1)

	conn := dial(t, server)
	assert.Eventually(t, func() bool { return hub.ClientCount(1) == 1 }, time.Second, 10*time.Millisecond)

	statuses := []string{"accepted", "preparing", "picked_up"}
	for _, s := range statuses {
		hub.Broadcast(1, services.EventOrderStatusUpdated, map[string]interface{}{"status": s})
	}

	conn.SetReadDeadline(time.Now().Add(time.Second))
	for _, expected := range statuses {
		var envelope Envelope
		assert.NoError(t, conn.ReadJSON(&envelope))
		data := envelope.Data.(map[string]interface{})
		assert.Equal(t, expected, data["status"])
	}
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	hub, server := newHubServer(t, 1)

	conn := dial(t, server)
	assert.Eventually(t, func() bool { return hub.ClientCount(1) == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount(1) == 0 }, time.Second, 10*time.Millisecond,
		"Disconnected client should be unregistered")

	// Broadcasting to an empty channel must not block or panic
	hub.Broadcast(1, services.EventNewOrder, map[string]interface{}{"id": 1})
}

func TestHandleWebSocketWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	go hub.Run()

	router := gin.New()
	router.GET("/ws/orders", hub.HandleWebSocket)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	url := strings.Replace(server.URL, "http://", "ws://", 1) + "/ws/orders"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	assert.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
