package config

import (
	"github.com/spf13/viper"

	"github.com/mahdiidarabi/evmauth/pkg/evmauth"
)

// setDefaults registers every key so that environment variables are picked
// up by Unmarshal.
func setDefaults(v *viper.Viper) {
	cache := evmauth.DefaultCacheConfig()

	v.SetDefault("expected", "")
	v.SetDefault("signature_slot", 0)
	v.SetDefault("auxiliary_slot", 1)
	v.SetDefault("digest_source", evmauth.DigestTransactionID.String())
	v.SetDefault("recovery_base", evmauth.RecoveryBaseLegacy)

	v.SetDefault("batch.workers", 0)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.shards", cache.Shards)
	v.SetDefault("cache.life_window", cache.LifeWindow)
	v.SetDefault("cache.max_entries", cache.MaxEntriesInWindow)
	v.SetDefault("cache.hard_max_size_mb", cache.HardMaxCacheSizeMB)

	v.SetDefault("signer.type", "ethereum")
	v.SetDefault("signer.private_key", "")
}
