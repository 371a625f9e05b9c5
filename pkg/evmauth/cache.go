package evmauth

import (
	"context"
	"fmt"

	"github.com/allegro/bigcache/v3"
)

const (
	cacheEntrySize = 2 + AddressLength

	// cacheKeySizeHint is expected address, digest and compact signature.
	cacheKeySizeHint = AddressLength + DigestLength + CompactSignatureLength
)

// VerdictCache memoizes decisions per (expected address, digest, witness).
// The kernel is deterministic, so a cached decision is always the decision
// a fresh pass would produce.
type VerdictCache struct {
	cache *bigcache.BigCache
}

// NewVerdictCache creates a cache. Cancelling ctx stops its cleanup goroutine.
func NewVerdictCache(ctx context.Context, config CacheConfig) (*VerdictCache, error) {
	bc := bigcache.DefaultConfig(config.LifeWindow)
	bc.Shards = config.Shards
	bc.MaxEntriesInWindow = config.MaxEntriesInWindow
	bc.MaxEntrySize = cacheKeySizeHint + cacheEntrySize
	bc.HardMaxCacheSize = config.HardMaxCacheSizeMB
	bc.CleanWindow = config.LifeWindow

	cache, err := bigcache.New(ctx, bc)
	if err != nil {
		return nil, fmt.Errorf("failed to create verdict cache: %w", err)
	}
	return &VerdictCache{cache: cache}, nil
}

func cacheKey(expected Address, digest, witness []byte) string {
	key := make([]byte, 0, AddressLength+len(digest)+len(witness))
	key = append(key, expected[:]...)
	key = append(key, digest...)
	key = append(key, witness...)
	return string(key)
}

// Get returns the memoized decision, if any.
func (vc *VerdictCache) Get(expected Address, digest, witness []byte) (Decision, bool) {
	entry, err := vc.cache.Get(cacheKey(expected, digest, witness))
	if err != nil || len(entry) != cacheEntrySize {
		return Decision{}, false
	}
	d := Decision{Verdict: Verdict(entry[0]), Reason: Reason(entry[1])}
	copy(d.Recovered[:], entry[2:])
	if d.Reason == ReasonRecoveryFailed {
		d.Err = ErrPointNotOnCurve
	}
	return d, true
}

// Put memoizes d. Decisions about malformed input are not stored; they are
// rejected before any curve work and cost nothing to recompute.
func (vc *VerdictCache) Put(expected Address, digest, witness []byte, d Decision) error {
	if d.Verdict == Pending || d.Reason.Malformed() {
		return nil
	}
	entry := make([]byte, cacheEntrySize)
	entry[0] = byte(d.Verdict)
	entry[1] = byte(d.Reason)
	copy(entry[2:], d.Recovered[:])
	return vc.cache.Set(cacheKey(expected, digest, witness), entry)
}

// Len returns the number of memoized decisions.
func (vc *VerdictCache) Len() int { return vc.cache.Len() }

// Stats returns hit and miss counters.
func (vc *VerdictCache) Stats() bigcache.Stats { return vc.cache.Stats() }

// Close releases the cache.
func (vc *VerdictCache) Close() error { return vc.cache.Close() }

// CachedAuthorizer runs the decision procedure through a VerdictCache.
type CachedAuthorizer struct {
	config AuthorizationConfig
	cache  *VerdictCache
}

// NewCachedAuthorizer wraps config with cache.
func NewCachedAuthorizer(config AuthorizationConfig, cache *VerdictCache) *CachedAuthorizer {
	return &CachedAuthorizer{config: config, cache: cache}
}

// Authorize returns the memoized decision or computes and stores it.
func (ca *CachedAuthorizer) Authorize(digest MessageDigest, witness []byte) (Decision, error) {
	expected := ca.config.Expected()
	if d, ok := ca.cache.Get(expected, digest[:], witness); ok {
		return d, nil
	}
	d := ca.config.Authorize(digest, witness)
	if err := ca.cache.Put(expected, digest[:], witness, d); err != nil {
		return d, fmt.Errorf("failed to memoize decision: %w", err)
	}
	return d, nil
}
