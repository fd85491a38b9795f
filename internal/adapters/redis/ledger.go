package redisad

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"room_balancer/internal/adapters/observability"
	"room_balancer/internal/domain"
)

// Ledger keeps approval decisions in one hash per target date.
type Ledger struct {
	c   *redis.Client
	ttl time.Duration
}

func NewLedger(c *redis.Client, ttl time.Duration) *Ledger {
	return &Ledger{c: c, ttl: ttl}
}

func ledgerKey(date domain.Date) string { return "ledger:" + date.String() }

func (l *Ledger) Approvals(ctx context.Context, date domain.Date) (map[string]bool, error) {
	raw, err := l.c.HGetAll(ctx, ledgerKey(date)).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(raw))
	for guest, v := range raw {
		out[guest] = v == "1"
	}
	observability.ObserveCache("ledger", "read")
	return out, nil
}

func (l *Ledger) SetApproval(ctx context.Context, date domain.Date, guest string, approved bool) error {
	v := "0"
	if approved {
		v = "1"
	}
	key := ledgerKey(date)
	pipe := l.c.TxPipeline()
	pipe.HSet(ctx, key, guest, v)
	if l.ttl > 0 {
		pipe.Expire(ctx, key, l.ttl)
	}
	_, err := pipe.Exec(ctx)
	observability.ObserveCache("ledger", "set")
	return err
}

func (l *Ledger) Reset(ctx context.Context, date domain.Date) error {
	observability.ObserveCache("ledger", "del")
	return l.c.Del(ctx, ledgerKey(date)).Err()
}
