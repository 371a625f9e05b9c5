package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. EVMAUTH_EXPECTED or
// EVMAUTH_CACHE_ENABLED.
const EnvPrefix = "EVMAUTH"

// flagKeys maps CLI flag names onto configuration keys.
var flagKeys = map[string]string{
	"expected":       "expected",
	"signature-slot": "signature_slot",
	"aux-slot":       "auxiliary_slot",
	"digest-source":  "digest_source",
	"recovery-base":  "recovery_base",
	"workers":        "batch.workers",
	"cache":          "cache.enabled",
	"signer":         "signer.type",
	"private-key":    "signer.private_key",
}

func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}

// Load reads configuration with the following precedence (highest first):
//  1. Flags in flags that were set on the command line
//  2. Environment variables (EVMAUTH_* prefix)
//  3. The YAML file at path, when path is not empty
//  4. Built-in defaults
//
// flags may be nil.
func Load(ctx context.Context, path string, flags *pflag.FlagSet) (*Config, error) {
	v := newViperInstance()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("config_file", v.ConfigFileUsed()).
		Str("digest_source", cfg.DigestSource).
		Int("signature_slot", cfg.SignatureSlot).
		Uint8("recovery_base", cfg.RecoveryBase).
		Bool("cache", cfg.Cache.Enabled).
		Msg("configuration loaded")

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// bindFlags binds the known flags present in flags. Unset flags do not
// override lower layers.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}
