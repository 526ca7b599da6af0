// Package metrics is the observability sink for the submission pipeline.
// The notification path is fire-and-forget, so its failures never reach a
// caller; counting them here is the only place they stay visible.
package metrics

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Counter names incremented by the submission pipeline.
const (
	CounterSubmissionSaved = "patternwork:counters:submission_saved"
	CounterNotifySent      = "patternwork:counters:notify_sent"
	CounterNotifyFailed    = "patternwork:counters:notify_failed"
)

// Sink records pipeline events. Implementations must be safe for
// concurrent use and must never fail the caller.
type Sink interface {
	Incr(ctx context.Context, counter string)
}

// RedisSink counts events in Redis keys so they survive restarts and can
// be scraped by whatever is watching the instance.
type RedisSink struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewRedisSink creates a Sink backed by the given Redis client.
func NewRedisSink(rdb *redis.Client, log zerolog.Logger) *RedisSink {
	return &RedisSink{
		rdb: rdb,
		log: log.With().Str("component", "metrics").Logger(),
	}
}

// Incr increments the counter. Errors are logged and swallowed; a broken
// sink must not affect the pipeline it observes.
func (s *RedisSink) Incr(ctx context.Context, counter string) {
	if err := s.rdb.Incr(ctx, counter).Err(); err != nil {
		s.log.Warn().Err(err).Str("counter", counter).Msg("counter increment failed")
	}
}

// NopSink is used when Redis is not configured.
type NopSink struct{}

// Incr does nothing.
func (NopSink) Incr(context.Context, string) {}
