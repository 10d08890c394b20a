package redis

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const mirrorWriteTimeout = time.Second

// ViewMirror keeps the latest rendered view of one order in a Redis hash.
// Key format: tracking:order:<order_id>
//
// Mirror only records fields; Run writes them in the background, so
// renderers never wait on Redis. Fields set between two writes are merged
// into a single HSET.
type ViewMirror struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	log    zerolog.Logger

	mu      sync.Mutex
	pending map[string]any
	notify  chan struct{}
}

// NewViewMirror creates a ViewMirror for orderID. A non-positive ttl falls
// back to the default.
func NewViewMirror(client *redis.Client, orderID string, ttl time.Duration, log zerolog.Logger) *ViewMirror {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &ViewMirror{
		client:  client,
		key:     Key(orderID),
		ttl:     ttl,
		log:     log,
		pending: map[string]any{},
		notify:  make(chan struct{}, 1),
	}
}

// Key returns the hash key holding orderID's view.
func Key(orderID string) string {
	return fmt.Sprintf("tracking:order:%s", orderID)
}

// Mirror implements ports.ViewMirror. It never blocks.
func (m *ViewMirror) Mirror(fields map[string]any) {
	if len(fields) == 0 {
		return
	}

	m.mu.Lock()
	maps.Copy(m.pending, fields)
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}
}

// Run writes pending fields until ctx is cancelled, then flushes once more.
// Write failures are logged and dropped.
func (m *ViewMirror) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mirrorWriteTimeout)
			m.logFlush(m.Flush(flushCtx))
			cancel()
			return
		case <-m.notify:
			flushCtx, cancel := context.WithTimeout(ctx, mirrorWriteTimeout)
			m.logFlush(m.Flush(flushCtx))
			cancel()
		}
	}
}

// Flush writes the pending fields, plus last_update, and refreshes the TTL.
// Nothing is sent when no field changed since the previous flush.
func (m *ViewMirror) Flush(ctx context.Context) error {
	m.mu.Lock()
	if len(m.pending) == 0 {
		m.mu.Unlock()
		return nil
	}
	values := m.pending
	m.pending = make(map[string]any, len(values))
	m.mu.Unlock()

	values["last_update"] = time.Now().Unix()

	pipe := m.client.TxPipeline()
	pipe.HSet(ctx, m.key, values)
	pipe.Expire(ctx, m.key, m.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("mirror view %s: %w", m.key, err)
	}
	return nil
}

func (m *ViewMirror) logFlush(err error) {
	if err != nil {
		m.log.Warn().Err(err).Str("key", m.key).Msg("failed to mirror view")
	}
}

// Load reads back the mirrored view.
func (m *ViewMirror) Load(ctx context.Context) (map[string]string, error) {
	vals, err := m.client.HGetAll(ctx, m.key).Result()
	if err != nil {
		return nil, fmt.Errorf("load view %s: %w", m.key, err)
	}
	return vals, nil
}

// Ping reports whether the mirror's Redis is reachable.
func (m *ViewMirror) Ping(ctx context.Context) error {
	return m.client.Ping(ctx).Err()
}
