package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/mahdiidarabi/evmauth/pkg/evmauth"
)

// signedDigest applies the configured digest source to a transaction id for
// commands that work on a bare digest.
func (a *app) signedDigest(txID evmauth.MessageDigest) (evmauth.MessageDigest, error) {
	switch a.cfg.Source() {
	case evmauth.DigestTransactionID:
		return txID, nil
	case evmauth.DigestPersonalSign:
		return evmauth.PersonalSignDigest(txID), nil
	default:
		return evmauth.MessageDigest{}, fmt.Errorf("digest source %s needs a transaction; use verify", a.cfg.Source())
	}
}

func parseDigestFlag(value string) (evmauth.MessageDigest, error) {
	if value == "" {
		return evmauth.MessageDigest{}, errMissingDigest
	}
	return evmauth.ParseDigest(value)
}

func parseScalar(name, value string) (*uint256.Int, error) {
	if !strings.HasPrefix(value, "0x") {
		value = "0x" + value
	}
	b, err := hexutil.Decode(value)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	if len(b) > 32 {
		return nil, fmt.Errorf("%s exceeds 32 bytes", name)
	}
	return new(uint256.Int).SetBytes(b), nil
}

func printDecision(out io.Writer, label string, d evmauth.Decision) {
	if d.Accepted() {
		fmt.Fprintf(out, "[+] %s: accepted\n", label)
		fmt.Fprintf(out, "    Signer: %s\n", d.Recovered.Hex())
		return
	}
	fmt.Fprintf(out, "[-] %s: rejected (%s)\n", label, d.Reason)
	if !d.Recovered.IsZero() {
		fmt.Fprintf(out, "    Recovered: %s\n", d.Recovered.Hex())
	}
	if d.Err != nil {
		fmt.Fprintf(out, "    Cause: %v\n", d.Err)
	}
}
