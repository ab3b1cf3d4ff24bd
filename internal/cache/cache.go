package cache

import (
	"context"
	"fmt"
	"time"
)

// Store is the fingerprint-cache contract. Implementations are passive
// key-value holders with per-entry TTL and no business logic.
//
// Set never fails loudly: a false return means the write was dropped and the
// caller should carry on without the cache. Get on an expired entry behaves
// as a miss and evicts the entry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value (JSON-marshaled) under key for ttl. SetNX only writes
	// when the key is absent, which keeps URL→id mappings monotonic.
	Set(ctx context.Context, key string, value any, ttl time.Duration) bool
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) bool
	Delete(ctx context.Context, key string)
	Exists(ctx context.Context, key string) bool
	// TTL returns the remaining lifetime, or false when the key is absent.
	TTL(ctx context.Context, key string) (time.Duration, bool)
}

// OnHit and OnMiss are optional observers invoked on every Get outcome.
// Wired to Prometheus counters at startup; nil means not observed.
var (
	OnHit  func()
	OnMiss func()
)

func observe(hit bool) {
	if hit {
		if OnHit != nil {
			OnHit()
		}
		return
	}
	if OnMiss != nil {
		OnMiss()
	}
}

// Cache key layout, one prefix per blob kind.

func AnalysisKey(channelID string) string {
	return fmt.Sprintf("channel_analysis:%s", channelID)
}

func MetadataKey(channelID string) string {
	return fmt.Sprintf("channel_meta:%s", channelID)
}

func URLMappingKey(urlHash string) string {
	return fmt.Sprintf("channel_url:%s", urlHash)
}
