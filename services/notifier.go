package services

import (
	"github.com/dinehub/dinehub-api/models"
)

// Realtime event names pushed to connected dashboard/kitchen/rider clients
const (
	EventNewOrder           = "newOrder"
	EventOrderStatusUpdated = "orderStatusUpdated"
)

// Notifier delivers an event to every client currently subscribed to a
// restaurant's channel. Delivery is best-effort and at-most-once per
// connected client: there is no persistence or replay, a disconnected
// client resyncs through the order read endpoints on reconnect.
type Notifier interface {
	Broadcast(restaurantID uint, event string, payload interface{})
}

// StatusUpdatePayload is the wire shape of an orderStatusUpdated event.
// Rider assignment reuses it with the unchanged current status so all
// listening clients converge on one update channel.
type StatusUpdatePayload struct {
	ID          uint               `json:"id"`
	OrderNumber string             `json:"order_number"`
	Status      models.OrderStatus `json:"status"`
	RiderID     *uint              `json:"rider_id"`
}

// NopNotifier discards all events. It stands in wherever no realtime
// channel is wired, e.g. unit tests that only care about persistence.
type NopNotifier struct{}

// Broadcast implements Notifier
func (NopNotifier) Broadcast(restaurantID uint, event string, payload interface{}) {}
