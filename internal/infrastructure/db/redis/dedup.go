package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 30 * 24 * time.Hour

// SyncDeduper provides idempotency checks for mobile offline sync.
// Key format: sync:<company_id>:<sync_key>
type SyncDeduper struct {
	client *redis.Client
}

// NewSyncDeduper creates a SyncDeduper wrapping the given Redis client.
func NewSyncDeduper(client *redis.Client) *SyncDeduper {
	return &SyncDeduper{client: client}
}

// IsDuplicate reports whether this sync key has already produced a check-in.
func (d *SyncDeduper) IsDuplicate(ctx context.Context, companyID int64, syncKey string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(companyID, syncKey)).Result()
	if err != nil {
		return false, fmt.Errorf("sync dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this sync key has been consumed (expires after dedupTTL;
// the directory lookup backstops anything older).
func (d *SyncDeduper) Mark(ctx context.Context, companyID int64, syncKey string) error {
	return d.client.Set(ctx, d.key(companyID, syncKey), "1", dedupTTL).Err()
}

func (d *SyncDeduper) key(companyID int64, syncKey string) string {
	return fmt.Sprintf("sync:%d:%s", companyID, syncKey)
}
