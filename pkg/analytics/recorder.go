package analytics

import (
	"context"
	"time"

	"contact-page-backend/internal/domain"
	"contact-page-backend/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "analytics:events:"

// Noop discards every event. Used when analytics is disabled and in tests.
type Noop struct{}

func (Noop) Record(context.Context, domain.AnalyticsEvent) {}

// LogRecorder writes events to the application log
type LogRecorder struct{}

func (LogRecorder) Record(ctx context.Context, event domain.AnalyticsEvent) {
	logger.Log.InfoContext(ctx, "Analytics event", "category", event.Category, "action", event.Action)
}

type hashIncrementer interface {
	HIncrBy(ctx context.Context, key, field string, incr int64) *redis.IntCmd
}

// RedisRecorder keeps per-day event counters in a Redis hash:
// analytics:events:<YYYY-MM-DD> -> {"<category>:<action>": count}
type RedisRecorder struct {
	client  hashIncrementer
	timeout time.Duration
	now     func() time.Time
}

func NewRedisRecorder(client *redis.Client) *RedisRecorder {
	return &RedisRecorder{
		client:  client,
		timeout: 500 * time.Millisecond,
		now:     time.Now,
	}
}

// Record increments the counter. Failures are logged and dropped.
func (r *RedisRecorder) Record(ctx context.Context, event domain.AnalyticsEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	key := keyPrefix + r.now().UTC().Format("2006-01-02")
	field := event.Category + ":" + event.Action
	if err := r.client.HIncrBy(ctx, key, field, 1).Err(); err != nil {
		logger.Log.WarnContext(ctx, "Failed to record analytics event", "event", field, "error", err)
	}
}

// Multi fans an event out to several recorders
type Multi []domain.AnalyticsRecorder

func (m Multi) Record(ctx context.Context, event domain.AnalyticsEvent) {
	for _, r := range m {
		r.Record(ctx, event)
	}
}
