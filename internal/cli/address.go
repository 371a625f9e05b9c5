package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/evmauth/pkg/evmauth"
)

func newAddressCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "address <identifier>",
		Short: "Pad a 20-byte account identifier into a 32-byte address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := hexutil.Decode(args[0])
			if err != nil {
				return fmt.Errorf("failed to decode identifier: %w", err)
			}
			addr, err := evmauth.DeriveAddress(raw)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), addr.Hex())
			return nil
		},
	}
}
