package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/evmauth/pkg/evmauth"
)

func newVerifyCmd(a *app) *cobra.Command {
	var digestHex, auxHex string

	cmd := &cobra.Command{
		Use:   "verify <compact-signature>",
		Short: "Authorize one input against the expected signer",
		Long: `Build a transaction with id --digest, place the signature in the configured
witness slot and run the authorization decision procedure.

With --digest-source auxiliary_witness, --aux is placed in the auxiliary slot.
Exits non-zero when the input is rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txID, err := parseDigestFlag(digestHex)
			if err != nil {
				return err
			}
			witness, err := hexutil.Decode(args[0])
			if err != nil {
				return fmt.Errorf("failed to decode witness: %w", err)
			}

			authorizer, err := a.cfg.Authorizer(a.logger)
			if err != nil {
				return err
			}

			tx, err := a.transaction(txID, witness, auxHex)
			if err != nil {
				return err
			}

			d := authorizer.AuthorizeSpend(tx)
			a.logger.Debug().
				Str("verdict", d.Verdict.String()).
				Str("reason", d.Reason.String()).
				Int("signature_slot", a.cfg.SignatureSlot).
				Msg("input evaluated")

			printDecision(cmd.OutOrStdout(), txID.Hex(), d)
			if !d.Accepted() {
				return ErrRejected
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&digestHex, "digest", "", "32-byte transaction id in hex")
	cmd.Flags().StringVar(&auxHex, "aux", "", "auxiliary witness in hex (auxiliary_witness source)")
	return cmd
}

// transaction lays out the witnesses the way a transaction builder would:
// empty placeholders up to the highest configured slot.
func (a *app) transaction(txID evmauth.MessageDigest, witness []byte, auxHex string) (*evmauth.Transaction, error) {
	size := a.cfg.SignatureSlot + 1

	var aux []byte
	if a.cfg.Source() == evmauth.DigestAuxiliaryWitness {
		if auxHex == "" {
			return nil, fmt.Errorf("--aux is required with digest source %s", evmauth.DigestAuxiliaryWitness)
		}
		var err error
		if aux, err = hexutil.Decode(auxHex); err != nil {
			return nil, fmt.Errorf("failed to decode auxiliary witness: %w", err)
		}
		if a.cfg.AuxiliarySlot+1 > size {
			size = a.cfg.AuxiliarySlot + 1
		}
	}

	tx := &evmauth.Transaction{ID: txID, Witnesses: make([][]byte, size)}
	for i := range tx.Witnesses {
		tx.Witnesses[i] = []byte{}
	}
	tx.Witnesses[a.cfg.SignatureSlot] = witness
	if aux != nil {
		tx.Witnesses[a.cfg.AuxiliarySlot] = aux
	}
	return tx, nil
}
