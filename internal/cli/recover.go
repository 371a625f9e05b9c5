package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/evmauth/pkg/evmauth"
)

func newRecoverCmd(a *app) *cobra.Command {
	var digestHex string

	cmd := &cobra.Command{
		Use:   "recover <compact-signature>",
		Short: "Recover the account that produced a compact signature",
		Long: `Recover the signer of a compact signature over --digest.

With --digest-source personal_sign the digest is treated as a transaction id
and wrapped in the EIP-191 personal message hash first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txID, err := parseDigestFlag(digestHex)
			if err != nil {
				return err
			}
			digest, err := a.signedDigest(txID)
			if err != nil {
				return err
			}
			cs, err := evmauth.ParseCompactSignatureHex(args[0])
			if err != nil {
				return err
			}

			id, err := evmauth.RecoverIdentifier(digest[:], cs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "identifier: %s\n", id.Hex())
			fmt.Fprintf(out, "address: %s\n", evmauth.AddressFromIdentifier(id).Hex())
			return nil
		},
	}

	cmd.Flags().StringVar(&digestHex, "digest", "", "32-byte digest or transaction id in hex")
	return cmd
}
