package config

import (
	"fmt"

	"github.com/mahdiidarabi/evmauth/pkg/evmauth"
	"github.com/mahdiidarabi/evmauth/pkg/signer"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// An empty expected address is valid; commands that need one fail later with
// ErrExpectedMissing.
func Validate(cfg *Config) error {
	if cfg == nil {
		return ErrConfigNil
	}

	if cfg.Expected != "" {
		if _, err := evmauth.ParseAddress(cfg.Expected); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidExpected, err)
		}
	}

	if err := validateWitness(cfg); err != nil {
		return err
	}

	if cfg.RecoveryBase == 255 {
		return fmt.Errorf("%w: %d leaves no room for the second marker", ErrInvalidRecoveryBase, cfg.RecoveryBase)
	}

	if cfg.Batch.Workers < 0 {
		return fmt.Errorf("%w: batch.workers must not be negative, got %d", ErrInvalidBatchConfig, cfg.Batch.Workers)
	}

	if err := validateCache(&cfg.Cache); err != nil {
		return err
	}

	switch signer.Type(cfg.Signer.Type) {
	case signer.TypeEthereum, signer.TypeFirefly, signer.TypeDecred:
	default:
		return fmt.Errorf("%w: unknown signer type %q", ErrInvalidSignerConfig, cfg.Signer.Type)
	}

	return nil
}

func validateWitness(cfg *Config) error {
	if cfg.SignatureSlot < 0 {
		return fmt.Errorf("%w: signature_slot must not be negative, got %d", ErrInvalidSlot, cfg.SignatureSlot)
	}

	source, ok := evmauth.ParseDigestSource(cfg.DigestSource)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidDigestSource, cfg.DigestSource)
	}
	if source != evmauth.DigestAuxiliaryWitness {
		return nil
	}

	if cfg.AuxiliarySlot < 0 {
		return fmt.Errorf("%w: auxiliary_slot must not be negative, got %d", ErrInvalidSlot, cfg.AuxiliarySlot)
	}
	if cfg.AuxiliarySlot == cfg.SignatureSlot {
		return fmt.Errorf("%w: auxiliary_slot and signature_slot are both %d", ErrInvalidSlot, cfg.SignatureSlot)
	}
	return nil
}

func validateCache(cfg *CacheConfig) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Shards <= 0 || cfg.Shards&(cfg.Shards-1) != 0 {
		return fmt.Errorf("%w: cache.shards must be a power of two, got %d", ErrInvalidCacheConfig, cfg.Shards)
	}
	if cfg.LifeWindow <= 0 {
		return fmt.Errorf("%w: cache.life_window must be positive, got %s", ErrInvalidCacheConfig, cfg.LifeWindow)
	}
	if cfg.MaxEntries <= 0 {
		return fmt.Errorf("%w: cache.max_entries must be positive, got %d", ErrInvalidCacheConfig, cfg.MaxEntries)
	}
	return nil
}
