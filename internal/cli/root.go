// Package cli provides the command-line interface for evmauth.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/evmauth/internal/config"
	"github.com/mahdiidarabi/evmauth/internal/logging"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// GlobalFlags holds the flags shared by every command.
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
	LogFormat  string
}

// app carries the state set up by the root command for its subcommands.
type app struct {
	flags     GlobalFlags
	logWriter io.Writer // overrides the stderr logger when set
	cfg       *config.Config
	logger    zerolog.Logger
}

func newRootCmd(info BuildInfo, logWriter io.Writer) *cobra.Command {
	a := &app{logWriter: logWriter}

	cmd := &cobra.Command{
		Use:   "evmauth",
		Short: "Authorize spends with secp256k1 signatures from EVM accounts",
		Long: `evmauth checks that a transaction input carries a 64-byte compact
signature whose recovered signer matches a configured 32-byte address.

Configuration is read from --config, EVMAUTH_* environment variables and flags.`,
		Version: formatVersion(info),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addGlobalFlags(cmd, &a.flags)
	addConfigFlags(cmd)

	cmd.AddCommand(
		newAddressCmd(a),
		newEncodeCmd(a),
		newDecodeCmd(a),
		newRecoverCmd(a),
		newVerifyCmd(a),
		newVerifyBatchCmd(a),
		newSignCmd(a),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	if a.logWriter != nil {
		a.logger = logging.NewWithWriter(a.flags.Verbose, a.flags.Quiet, a.logWriter)
	} else {
		a.logger = logging.New(a.flags.Verbose, a.flags.Quiet, logging.Format(a.flags.LogFormat))
	}

	ctx := a.logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	cfg, err := config.Load(ctx, a.flags.ConfigFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func addGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "only log warnings and errors")
	cmd.PersistentFlags().StringVar(&flags.LogFormat, "log-format", string(logging.FormatAuto), "log format (auto|console|json)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// addConfigFlags registers the flags that override configuration keys. Their
// defaults are never used; unset flags fall through to the config layers.
func addConfigFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("expected", "", "expected signer (20-byte identifier or 32-byte address)")
	flags.Int("signature-slot", 0, "witness slot carrying the compact signature")
	flags.Int("aux-slot", 1, "witness slot carrying the digest for auxiliary_witness")
	flags.String("digest-source", "transaction_id", "digest source (transaction_id|personal_sign|auxiliary_witness)")
	flags.Uint8("recovery-base", 27, "offset of the signer's v markers (0 or 27)")
	flags.Int("workers", 0, "parallel workers for verify-batch (0 = number of CPUs)")
	flags.Bool("cache", false, "memoize decisions in verify-batch")
	flags.String("signer", "ethereum", "signer implementation for sign (ethereum|firefly|decred)")
	flags.String("private-key", "", "hex private key for sign")
}

func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
func Execute(ctx context.Context, info BuildInfo) error {
	return newRootCmd(info, nil).ExecuteContext(ctx)
}
