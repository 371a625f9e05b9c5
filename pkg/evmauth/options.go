package evmauth

import (
	"time"

	"github.com/rs/zerolog"
)

// BatchConfig configures parallel evaluation of many spends.
type BatchConfig struct {
	// NumWorkers bounds concurrent evaluations (0 = runtime.NumCPU()).
	NumWorkers int

	// Logger receives one debug event per rejected input. Defaults to a
	// disabled logger.
	Logger zerolog.Logger
}

// DefaultBatchConfig returns a configuration with auto-detected workers and
// logging disabled.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		NumWorkers: 0, // Auto-detect
		Logger:     zerolog.Nop(),
	}
}

// CacheConfig configures the verdict cache.
type CacheConfig struct {
	// Shards is the number of cache shards (must be a power of two).
	Shards int

	// LifeWindow is how long a memoized verdict is kept.
	LifeWindow time.Duration

	// MaxEntriesInWindow sizes the initial shard allocation.
	MaxEntriesInWindow int

	// HardMaxCacheSizeMB caps memory use (0 = unlimited).
	HardMaxCacheSizeMB int
}

// DefaultCacheConfig returns a small cache suited to one block of inputs.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Shards:             64,
		LifeWindow:         10 * time.Minute,
		MaxEntriesInWindow: 10000,
		HardMaxCacheSizeMB: 0,
	}
}
