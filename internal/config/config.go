// Package config loads the evmauth CLI configuration.
package config

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mahdiidarabi/evmauth/pkg/evmauth"
)

// Config is the complete CLI configuration.
type Config struct {
	// Expected is the address spends must be signed by, as 20-byte or 32-byte hex.
	Expected string `mapstructure:"expected"`

	// SignatureSlot is the witness slot carrying the compact signature.
	SignatureSlot int `mapstructure:"signature_slot"`

	// AuxiliarySlot is the witness slot read when DigestSource is auxiliary_witness.
	AuxiliarySlot int `mapstructure:"auxiliary_slot"`

	// DigestSource is one of transaction_id, personal_sign or auxiliary_witness.
	DigestSource string `mapstructure:"digest_source"`

	// RecoveryBase is the offset of the signer's native v markers (0 or 27).
	RecoveryBase uint8 `mapstructure:"recovery_base"`

	Batch  BatchConfig  `mapstructure:"batch"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Signer SignerConfig `mapstructure:"signer"`
}

// BatchConfig configures verify-batch.
type BatchConfig struct {
	Workers int `mapstructure:"workers"`
}

// CacheConfig configures the verdict cache.
type CacheConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Shards        int           `mapstructure:"shards"`
	LifeWindow    time.Duration `mapstructure:"life_window"`
	MaxEntries    int           `mapstructure:"max_entries"`
	HardMaxSizeMB int           `mapstructure:"hard_max_size_mb"`
}

// SignerConfig configures the sign command.
type SignerConfig struct {
	Type       string `mapstructure:"type"`
	PrivateKey string `mapstructure:"private_key"`
}

// ExpectedAddress parses Expected.
func (c *Config) ExpectedAddress() (evmauth.Address, error) {
	if c.Expected == "" {
		return evmauth.Address{}, ErrExpectedMissing
	}
	return evmauth.ParseAddress(c.Expected)
}

// Codec returns the codec for RecoveryBase.
func (c *Config) Codec() evmauth.Codec {
	return evmauth.NewCodec(c.RecoveryBase)
}

// Source returns the parsed digest source. Validate guarantees it parses.
func (c *Config) Source() evmauth.DigestSource {
	source, _ := evmauth.ParseDigestSource(c.DigestSource)
	return source
}

// Authorizer builds an authorizer for the expected address.
func (c *Config) Authorizer(logger zerolog.Logger) (*evmauth.Authorizer, error) {
	expected, err := c.ExpectedAddress()
	if err != nil {
		return nil, err
	}
	return evmauth.NewAuthorizer(evmauth.NewAuthorizationConfig(expected)).
		WithSignatureSlot(evmauth.WitnessSlot(c.SignatureSlot)).
		WithAuxiliarySlot(evmauth.WitnessSlot(c.AuxiliarySlot)).
		WithDigestSource(c.Source()).
		WithBatchConfig(c.BatchConfig(logger)), nil
}

// BatchConfig returns the evaluator configuration.
func (c *Config) BatchConfig(logger zerolog.Logger) evmauth.BatchConfig {
	return evmauth.BatchConfig{
		NumWorkers: c.Batch.Workers,
		Logger:     logger,
	}
}

// CacheConfig returns the verdict cache configuration.
func (c *Config) CacheConfig() evmauth.CacheConfig {
	return evmauth.CacheConfig{
		Shards:             c.Cache.Shards,
		LifeWindow:         c.Cache.LifeWindow,
		MaxEntriesInWindow: c.Cache.MaxEntries,
		HardMaxCacheSizeMB: c.Cache.HardMaxSizeMB,
	}
}
