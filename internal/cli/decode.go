package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/evmauth/pkg/evmauth"
)

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <compact-signature>",
		Short: "Split a compact signature into r, s and v",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := evmauth.ParseCompactSignatureHex(args[0])
			if err != nil {
				return err
			}
			codec := a.cfg.Codec()
			sig := codec.Decode(cs)

			r, s := sig.R.Bytes32(), sig.S.Bytes32()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "r: %s\n", hexutil.Encode(r[:]))
			fmt.Fprintf(out, "s: %s\n", hexutil.Encode(s[:]))
			fmt.Fprintf(out, "v: %d\n", sig.V)
			fmt.Fprintf(out, "recovery id: %d\n", cs.RecoveryID())
			fmt.Fprintf(out, "rsv: %s\n", hexutil.Encode(codec.ExpandRSV(cs)))
			return nil
		},
	}
}
