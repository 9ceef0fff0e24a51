// Package dedup suppresses near-simultaneous duplicate notifications. Some
// UPI apps post the same transaction twice within a second or two (status
// bar plus inbox-style update), which would otherwise store and announce the
// payment twice.
package dedup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "soundpay:dedup:"

// Deduper reports whether an equivalent payment was already observed inside
// the suppression window, marking it observed otherwise. Release drops the
// claim so a redelivery of the same event is not mistaken for a duplicate
// when processing failed after Seen.
type Deduper interface {
	Seen(ctx context.Context, appName, amount, sender string) (bool, error)
	Release(ctx context.Context, appName, amount, sender string) error
}

// Noop never suppresses anything. Used when no Redis address is configured.
type Noop struct{}

func (Noop) Seen(context.Context, string, string, string) (bool, error) {
	return false, nil
}

func (Noop) Release(context.Context, string, string, string) error {
	return nil
}

// RedisDeduper implements the window with SET NX EX, so concurrent workers
// agree on which delivery of a duplicate burst wins.
type RedisDeduper struct {
	client *redis.Client
	window time.Duration
}

func NewRedisDeduper(addr string, window time.Duration) *RedisDeduper {
	return &RedisDeduper{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		window: window,
	}
}

func (d *RedisDeduper) Seen(ctx context.Context, appName, amount, sender string) (bool, error) {
	created, err := d.client.SetNX(ctx, dedupKey(appName, amount, sender), 1, d.window).Result()
	if err != nil {
		return false, fmt.Errorf("dedup setnx: %w", err)
	}
	return !created, nil
}

func (d *RedisDeduper) Release(ctx context.Context, appName, amount, sender string) error {
	if err := d.client.Del(ctx, dedupKey(appName, amount, sender)).Err(); err != nil {
		return fmt.Errorf("dedup del: %w", err)
	}
	return nil
}

func (d *RedisDeduper) Close() error {
	return d.client.Close()
}

func dedupKey(appName, amount, sender string) string {
	sum := sha256.Sum256([]byte(appName + "|" + amount + "|" + sender))
	return keyPrefix + hex.EncodeToString(sum[:12])
}
