// Package cache fronts the record store on the resolve path. Both the
// "found" and the "not found" outcome of a lookup are cached for the TTL
// window, so repeated probes of a missing key also skip the store.
// Entries are never invalidated on update or delete; staleness is bounded
// by the TTL.
package cache

import (
	"context"
	"time"

	"github.com/smartinb/go-url-shortener/internal/storage"
)

// DefaultTTL bounds how long a resolution, positive or negative, may be
// served without a fresh store read.
const DefaultTTL = 60 * time.Second

// Resolution is the cached outcome of a short-key lookup. Found false
// means the key resolved to nothing when it was last checked.
type Resolution struct {
	Record *storage.URLRecord `json:"record,omitempty"`
	Found  bool               `json:"found"`
}

// ResolutionCache stores lookup outcomes per short key. Implementations
// are best-effort: a lost or failed entry costs a store round trip, never
// correctness.
type ResolutionCache interface {
	Get(ctx context.Context, shortKey string) (Resolution, bool)
	Set(ctx context.Context, shortKey string, res Resolution)
}
