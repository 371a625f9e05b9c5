package config

import "errors"

var (
	ErrConfigNil           = errors.New("config is nil")
	ErrExpectedMissing     = errors.New("expected address not configured")
	ErrInvalidExpected     = errors.New("invalid expected address")
	ErrInvalidSlot         = errors.New("invalid witness slot")
	ErrInvalidDigestSource = errors.New("invalid digest source")
	ErrInvalidRecoveryBase = errors.New("invalid recovery base")
	ErrInvalidBatchConfig  = errors.New("invalid batch configuration")
	ErrInvalidCacheConfig  = errors.New("invalid cache configuration")
	ErrInvalidSignerConfig = errors.New("invalid signer configuration")
)
