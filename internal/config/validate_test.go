package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Expected:      signerA,
		SignatureSlot: 0,
		AuxiliarySlot: 1,
		DigestSource:  "transaction_id",
		RecoveryBase:  27,
		Cache: CacheConfig{
			Shards:     64,
			LifeWindow: time.Minute,
			MaxEntries: 10,
		},
		Signer: SignerConfig{Type: "ethereum"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"no expected", func(cfg *Config) { cfg.Expected = "" }, nil},
		{"padded expected", func(cfg *Config) { cfg.Expected = "0x0000000000000000000000002e988a386a799f506693793c6a5af6b54dfaabfb" }, nil},
		{"bad expected", func(cfg *Config) { cfg.Expected = "0x1234" }, ErrInvalidExpected},
		{"negative slot", func(cfg *Config) { cfg.SignatureSlot = -1 }, ErrInvalidSlot},
		{"unknown source", func(cfg *Config) { cfg.DigestSource = "sha3" }, ErrInvalidDigestSource},
		{"aux slot clash", func(cfg *Config) {
			cfg.DigestSource = "aux"
			cfg.AuxiliarySlot = 0
		}, ErrInvalidSlot},
		{"aux slot negative", func(cfg *Config) {
			cfg.DigestSource = "aux"
			cfg.AuxiliarySlot = -2
		}, ErrInvalidSlot},
		{"aux slot ignored", func(cfg *Config) { cfg.AuxiliarySlot = 0 }, nil},
		{"recovery base 255", func(cfg *Config) { cfg.RecoveryBase = 255 }, ErrInvalidRecoveryBase},
		{"negative workers", func(cfg *Config) { cfg.Batch.Workers = -1 }, ErrInvalidBatchConfig},
		{"cache shards", func(cfg *Config) {
			cfg.Cache.Enabled = true
			cfg.Cache.Shards = 3
		}, ErrInvalidCacheConfig},
		{"cache life window", func(cfg *Config) {
			cfg.Cache.Enabled = true
			cfg.Cache.LifeWindow = 0
		}, ErrInvalidCacheConfig},
		{"cache disabled", func(cfg *Config) { cfg.Cache.Shards = 3 }, nil},
		{"signer type", func(cfg *Config) { cfg.Signer.Type = "ledger" }, ErrInvalidSignerConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.ErrorIs(t, Validate(nil), ErrConfigNil)
}
