package repository

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// SalesCounter is the per-session running total of today's sales. day is
// the YYYY-MM-DD calendar date in the business time zone; a counter read or
// written under a new day starts from zero.
type SalesCounter interface {
	Add(ctx context.Context, sessionID, day string, amount decimal.Decimal) (decimal.Decimal, error)
	Get(ctx context.Context, sessionID, day string) (decimal.Decimal, error)
}

// ── Redis ─────────────────────────────────────────────────────────────────────

// Keys expire a day after the day they count.
const salesCounterTTL = 48 * time.Hour

type redisSalesCounter struct{ rdb *redis.Client }

// NewRedisSalesCounter stores totals in minor units (kobo) under
// sales:<session>:<day> so INCRBY stays exact.
func NewRedisSalesCounter(rdb *redis.Client) SalesCounter {
	return &redisSalesCounter{rdb: rdb}
}

func salesKey(sessionID, day string) string { return "sales:" + sessionID + ":" + day }

var minorUnits = decimal.NewFromInt(100)

func (c *redisSalesCounter) Add(ctx context.Context, sessionID, day string, amount decimal.Decimal) (decimal.Decimal, error) {
	key := salesKey(sessionID, day)
	kobo := amount.Mul(minorUnits).Round(0).IntPart()

	pipe := c.rdb.TxPipeline()
	incr := pipe.IncrBy(ctx, key, kobo)
	pipe.Expire(ctx, key, salesCounterTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return decimal.Zero, err
	}
	return decimal.New(incr.Val(), -2), nil
}

func (c *redisSalesCounter) Get(ctx context.Context, sessionID, day string) (decimal.Decimal, error) {
	v, err := c.rdb.Get(ctx, salesKey(sessionID, day)).Int64()
	if err == redis.Nil {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.New(v, -2), nil
}

// ── Memory ────────────────────────────────────────────────────────────────────

type daySales struct {
	day   string
	total decimal.Decimal
}

type memorySalesCounter struct {
	mu     sync.Mutex
	totals map[string]daySales
}

// NewMemorySalesCounter keeps one (day, total) pair per session and resets it
// when the stored day no longer matches.
func NewMemorySalesCounter() SalesCounter {
	return &memorySalesCounter{totals: make(map[string]daySales)}
}

func (c *memorySalesCounter) Add(_ context.Context, sessionID, day string, amount decimal.Decimal) (decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur := c.totals[sessionID]
	if cur.day != day {
		cur = daySales{day: day}
	}
	cur.total = cur.total.Add(amount)
	c.totals[sessionID] = cur
	return cur.total, nil
}

func (c *memorySalesCounter) Get(_ context.Context, sessionID, day string) (decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur, ok := c.totals[sessionID]
	if !ok || cur.day != day {
		return decimal.Zero, nil
	}
	return cur.total, nil
}
