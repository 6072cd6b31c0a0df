package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// TxDedup is the Redis fast path for payment idempotency checks.
// Key format: payment:tx:<transaction_id>. The payment log's unique index is
// the authoritative guard; this only short-circuits the common replay.
type TxDedup struct {
	client *redis.Client
}

// NewTxDedup creates a TxDedup wrapping the given Redis client.
func NewTxDedup(client *redis.Client) *TxDedup {
	return &TxDedup{client: client}
}

// Seen reports whether this transaction id has already been processed.
func (d *TxDedup) Seen(ctx context.Context, transactionID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(transactionID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this transaction has been processed (expires after dedupTTL).
func (d *TxDedup) Mark(ctx context.Context, transactionID string) error {
	return d.client.Set(ctx, d.key(transactionID), "1", dedupTTL).Err()
}

func (d *TxDedup) key(transactionID string) string {
	return fmt.Sprintf("payment:tx:%s", transactionID)
}
