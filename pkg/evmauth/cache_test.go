package evmauth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *VerdictCache {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	config := DefaultCacheConfig()
	config.Shards = 4
	config.LifeWindow = time.Minute
	config.MaxEntriesInWindow = 64

	cache, err := NewVerdictCache(ctx, config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestCachedAuthorizer(t *testing.T) {
	cache := newTestCache(t)
	tv := loadTestVectors(t)[0]
	ca := NewCachedAuthorizer(NewAuthorizationConfig(tv.address(t)), cache)

	first, err := ca.Authorize(tv.digest(t), tv.compact(t).Bytes())
	require.NoError(t, err)
	assert.True(t, first.Accepted())
	assert.Equal(t, 1, cache.Len())

	second, err := ca.Authorize(tv.digest(t), tv.compact(t).Bytes())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), cache.Stats().Hits)
}

func TestCachedAuthorizer_Rejections(t *testing.T) {
	cache := newTestCache(t)
	info := loadTestKeyInfo(t)
	tv := loadTestVectors(t)[0]
	ca := NewCachedAuthorizer(NewAuthorizationConfig(mustAddress(t, info.SignerB)), cache)

	d, err := ca.Authorize(tv.digest(t), tv.compact(t).Bytes())
	require.NoError(t, err)
	assert.Equal(t, ReasonAddressMismatch, d.Reason)

	cached, ok := cache.Get(mustAddress(t, info.SignerB), tv.digest(t).Bytes(), tv.compact(t).Bytes())
	require.True(t, ok)
	assert.Equal(t, d, cached)

	// recovery failures keep their cause
	witness := tv.compact(t).Bytes()
	copy(witness[:32], make([]byte, 32))
	_, err = ca.Authorize(tv.digest(t), witness)
	require.NoError(t, err)
	cached, err = ca.Authorize(tv.digest(t), witness)
	require.NoError(t, err)
	assert.Equal(t, ReasonRecoveryFailed, cached.Reason)
	assert.ErrorIs(t, cached.Err, ErrPointNotOnCurve)
	assert.Equal(t, 2, cache.Len())
}

func TestVerdictCache_SkipsMalformed(t *testing.T) {
	cache := newTestCache(t)
	tv := loadTestVectors(t)[0]
	ca := NewCachedAuthorizer(NewAuthorizationConfig(tv.address(t)), cache)

	d, err := ca.Authorize(tv.digest(t), []byte{0x01, 0x02})
	require.NoError(t, err)
	assert.Equal(t, ReasonMalformedWitness, d.Reason)
	assert.Equal(t, 0, cache.Len())

	require.NoError(t, cache.Put(tv.address(t), tv.digest(t).Bytes(), nil, Decision{}))
	assert.Equal(t, 0, cache.Len())
}
