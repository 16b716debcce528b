package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/tatamihq/tatami-backend/internal/config"
	ws "github.com/tatamihq/tatami-backend/internal/websocket"
)

// RosterEventPublisher broadcasts check-in/check-out events for live
// mat boards. Publishing is best-effort; a failed broadcast never fails
// the check-in itself.
type RosterEventPublisher interface {
	Publish(ctx context.Context, evt ws.RosterEvent)
}

// RedisRosterPublisher publishes roster events on the class session's
// Redis PubSub channel.
type RedisRosterPublisher struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewRedisRosterPublisher creates a new RedisRosterPublisher.
func NewRedisRosterPublisher(rdb *redis.Client, log zerolog.Logger) *RedisRosterPublisher {
	return &RedisRosterPublisher{
		rdb: rdb,
		log: log.With().Str("component", "roster_publisher").Logger(),
	}
}

// Publish sends the event to every subscriber of the session channel.
func (p *RedisRosterPublisher) Publish(ctx context.Context, evt ws.RosterEvent) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return
	}
	channel := config.CacheKey.RosterChannel(evt.ClassID, evt.ClassDate)
	if err := p.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		p.log.Warn().Err(err).Str("channel", channel).Msg("Roster event publish failed")
	}
}
