package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// eventChannelPrefix scopes bus channels per restaurant:
// orders:events:<restaurantID>
const eventChannelPrefix = "orders:events:"

// busMessage is the envelope published on the Redis channel
type busMessage struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// RedisNotifier bridges broadcasts across horizontally scaled instances.
// Broadcast publishes to a per-restaurant Redis channel instead of the
// local registry; Run subscribes to all restaurant channels and forwards
// every received event into the local notifier, so clients connected to any
// instance see every event. Without this bridge clients attached to a
// different instance would miss events entirely.
type RedisNotifier struct {
	rdb   *redis.Client
	local Notifier
}

// NewRedisNotifier creates a notifier that fans out through the Redis
// instance at addr and delivers locally through local
func NewRedisNotifier(addr string, local Notifier) *RedisNotifier {
	return &RedisNotifier{
		rdb:   redis.NewClient(&redis.Options{Addr: addr}),
		local: local,
	}
}

// Broadcast implements Notifier by publishing to the restaurant's channel.
// Publish failures are logged, not surfaced: event delivery is best-effort
// and must not fail the order mutation that triggered it.
func (n *RedisNotifier) Broadcast(restaurantID uint, event string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to marshal event payload")
		return
	}

	msg, err := json.Marshal(busMessage{Event: event, Payload: raw})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to marshal bus message")
		return
	}

	if err := n.rdb.Publish(context.Background(), channelFor(restaurantID), msg).Err(); err != nil {
		log.Error().Err(err).
			Uint("restaurant_id", restaurantID).
			Str("event", event).
			Msg("failed to publish event to redis")
	}
}

// Run consumes the shared bus and forwards events into the local notifier.
// It blocks until ctx is cancelled and is meant to run in its own goroutine
// per instance.
func (n *RedisNotifier) Run(ctx context.Context) {
	pubsub := n.rdb.PSubscribe(ctx, eventChannelPrefix+"*")
	defer pubsub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return
			}

			restaurantID, err := restaurantFromChannel(msg.Channel)
			if err != nil {
				log.Warn().Str("channel", msg.Channel).Msg("ignoring event on unexpected channel")
				continue
			}

			var bus busMessage
			if err := json.Unmarshal([]byte(msg.Payload), &bus); err != nil {
				log.Warn().Err(err).Str("channel", msg.Channel).Msg("ignoring malformed bus message")
				continue
			}

			n.local.Broadcast(restaurantID, bus.Event, bus.Payload)
		}
	}
}

func channelFor(restaurantID uint) string {
	return fmt.Sprintf("%s%d", eventChannelPrefix, restaurantID)
}

func restaurantFromChannel(channel string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(channel, eventChannelPrefix), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
