// Package realtime delivers committed notifications to live subscribers
// over Redis pub/sub. Each user has a private channel; frontends subscribe
// to their own channel (via a websocket gateway or SSE bridge) and receive
// the notification JSON the moment it is published.
//
// Delivery is best effort. Publishing to a channel with no subscriber is a
// successful no-op; the durable inbox row is the source of truth.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tbourn/go-qna-backend/internal/domain"
)

// Channel returns the pub/sub channel carrying a user's notifications.
func Channel(userID string) string {
	return "notify:user:" + userID
}

// publisher is the slice of the Redis client Push depends on. Tests swap in
// a fake; NewRedisPusher always wires the real client.
type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPusher publishes notifications to per-user Redis channels. It
// satisfies the services.Pusher interface.
type RedisPusher struct {
	rdb *redis.Client
	pub publisher
}

// NewRedisPusher connects to Redis and verifies the connection with a ping.
func NewRedisPusher(ctx context.Context, addr, password string, db int) (*RedisPusher, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisPusher{rdb: rdb, pub: rdb}, nil
}

// Push publishes the notification as JSON on the recipient's channel.
func (p *RedisPusher) Push(ctx context.Context, recipientID string, n *domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification %s: %w", n.ID, err)
	}
	if err := p.pub.Publish(ctx, Channel(recipientID), payload).Err(); err != nil {
		return fmt.Errorf("publish notification %s: %w", n.ID, err)
	}
	return nil
}

// Subscribe returns a pub/sub subscription on the user's channel. Intended
// for gateway processes that bridge Redis to client connections.
func (p *RedisPusher) Subscribe(ctx context.Context, userID string) *redis.PubSub {
	return p.rdb.Subscribe(ctx, Channel(userID))
}

// Close releases the underlying client.
func (p *RedisPusher) Close() error {
	return p.rdb.Close()
}
