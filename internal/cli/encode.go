package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/evmauth/pkg/evmauth"
)

func newEncodeCmd(a *app) *cobra.Command {
	var rsvHex, rHex, sHex string
	var v uint8

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode r, s, v into a 64-byte compact signature",
		Long: `Encode a signer's output into the 64-byte witness form.

Pass either --rsv with the 65-byte r||s||v signature, or --r, --s and --v.
v is interpreted with the configured --recovery-base.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			codec := a.cfg.Codec()

			var (
				cs  evmauth.CompactSignature
				err error
			)
			switch {
			case rsvHex != "":
				cs, err = evmauth.NewClient().WithCodec(codec).EncodeRSVHex(rsvHex)
			case rHex != "" && sHex != "" && cmd.Flags().Changed("v"):
				cs, err = encodeComponents(codec, rHex, sHex, v)
			default:
				return fmt.Errorf("either --rsv or all of --r, --s and --v are required")
			}
			if err != nil {
				return err
			}

			a.logger.Debug().Uint8("recovery_id", cs.RecoveryID()).Msg("signature encoded")
			fmt.Fprintln(cmd.OutOrStdout(), cs.Hex())
			return nil
		},
	}

	cmd.Flags().StringVar(&rsvHex, "rsv", "", "65-byte r||s||v signature in hex")
	cmd.Flags().StringVar(&rHex, "r", "", "r in hex")
	cmd.Flags().StringVar(&sHex, "s", "", "s in hex")
	cmd.Flags().Uint8Var(&v, "v", 0, "native recovery marker")
	return cmd
}

func encodeComponents(codec evmauth.Codec, rHex, sHex string, v uint8) (evmauth.CompactSignature, error) {
	r, err := parseScalar("r", rHex)
	if err != nil {
		return evmauth.CompactSignature{}, err
	}
	s, err := parseScalar("s", sHex)
	if err != nil {
		return evmauth.CompactSignature{}, err
	}
	sig := evmauth.Signature{R: r, S: s, V: v}
	if err := sig.Validate(); err != nil {
		return evmauth.CompactSignature{}, err
	}
	return codec.Encode(sig)
}
