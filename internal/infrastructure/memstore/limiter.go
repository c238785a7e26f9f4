package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// FixedWindowLimiter counts requests per key per window in memory. It mirrors
// the Redis limiter's semantics for single-process deployments and tests.
type FixedWindowLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	counts map[string]*windowCount
}

type windowCount struct {
	window int64
	count  int
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		limit:  limit,
		window: window,
		counts: make(map[string]*windowCount),
	}
}

func (l *FixedWindowLimiter) Allow(_ context.Context, key string) (bool, error) {
	window := time.Now().UnixNano() / int64(l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	// Prune keys whose window has passed; current windows keep their counts.
	if len(l.counts) > 4096 {
		for k, wc := range l.counts {
			if wc.window < window {
				delete(l.counts, k)
			}
		}
	}

	wc, ok := l.counts[key]
	if !ok || wc.window != window {
		wc = &windowCount{window: window}
		l.counts[key] = wc
	}
	wc.count++
	return wc.count <= l.limit, nil
}

// SyncDeduper records seen sync keys per company.
type SyncDeduper struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewSyncDeduper() *SyncDeduper {
	return &SyncDeduper{seen: make(map[string]struct{})}
}

func dedupKey(companyID int64, syncKey string) string {
	return fmt.Sprintf("%d:%s", companyID, syncKey)
}

func (d *SyncDeduper) IsDuplicate(_ context.Context, companyID int64, syncKey string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.seen[dedupKey(companyID, syncKey)]
	return ok, nil
}

func (d *SyncDeduper) Mark(_ context.Context, companyID int64, syncKey string) error {
	d.mu.Lock()
	d.seen[dedupKey(companyID, syncKey)] = struct{}{}
	d.mu.Unlock()
	return nil
}
