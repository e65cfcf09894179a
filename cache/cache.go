/*
Package cache provides the calculation result cache.

PURPOSE:
  Every engine call is pure, so a response can be replayed for an
  identical request without staleness concerns - the cache key includes
  the rates version, which is the only thing that could change an
  answer. Redis backs the cache in deployment; the in-memory store backs
  single-process runs and the mock backs tests.
*/
package cache

import (
	"context"
	"time"
)

// Repository is the cache contract the API layer depends on. A miss is
// reported through the bool, never an error; Set failures are non-fatal
// to the request path.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
