package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/evmauth/internal/config"
	"github.com/mahdiidarabi/evmauth/pkg/evmauth"
	"github.com/mahdiidarabi/evmauth/pkg/signer"
)

func newSignCmd(a *app) *cobra.Command {
	var digestHex string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a transaction id and print the compact witness",
		Long: `Sign --digest with the configured signer and print the witness to append.

The key comes from --private-key or EVMAUTH_SIGNER_PRIVATE_KEY. With
--digest-source personal_sign the EIP-191 personal message hash of the
transaction id is signed, as a browser wallet would.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Signer.PrivateKey == "" {
				return fmt.Errorf("%w: no private key configured", config.ErrInvalidSignerConfig)
			}
			s, err := signer.New(signer.Type(a.cfg.Signer.Type), a.cfg.Signer.PrivateKey)
			if err != nil {
				return err
			}

			txID, err := parseDigestFlag(digestHex)
			if err != nil {
				return err
			}
			digest, err := a.signedDigest(txID)
			if err != nil {
				return err
			}

			rsv, err := s.SignDigest(digest)
			if err != nil {
				return fmt.Errorf("failed to sign digest: %w", err)
			}
			cs, err := evmauth.NewCodec(s.RecoveryBase()).EncodeRSV(rsv)
			if err != nil {
				return err
			}

			a.logger.Debug().
				Str("signer", a.cfg.Signer.Type).
				Str("digest_source", a.cfg.Source().String()).
				Msg("digest signed")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "identifier: %s\n", s.Identifier().Hex())
			fmt.Fprintf(out, "address: %s\n", signer.Address(s).Hex())
			fmt.Fprintf(out, "digest: %s\n", digest.Hex())
			fmt.Fprintf(out, "rsv: %s\n", hexutil.Encode(rsv))
			fmt.Fprintf(out, "compact: %s\n", cs.Hex())
			return nil
		},
	}

	cmd.Flags().StringVar(&digestHex, "digest", "", "32-byte transaction id in hex")
	return cmd
}
