// Package evmauth authorizes spends with signatures from externally owned
// secp256k1 accounts (the account model used by EVM chains).
//
// A spender signs the transaction identifier with an ordinary wallet key. The
// signature is packed into a 64-byte compact form (r, then s with the recovery
// id folded into its top bit) and attached to the transaction as a witness.
// At validation time the signer's account identifier is recovered from the
// witness and compared to a configured 32-byte address.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/evmauth/pkg/evmauth"
//
//	// The 20-byte wallet identifier, left-padded to 32 bytes.
//	expected := evmauth.AddressFromIdentifier(walletAddress)
//	config := evmauth.NewAuthorizationConfig(expected)
//
//	// rsv is the 65-byte r||s||v signature returned by the wallet.
//	compact, err := evmauth.LegacyCodec.EncodeRSV(rsv)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	decision := config.Authorize(txID, compact.Bytes())
//	if !decision.Accepted() {
//	    fmt.Println("rejected:", decision.Reason)
//	}
//
// # Wire Format
//
//	bytes  0..31  r, big-endian
//	bytes 32..63  s | recoveryId<<255, big-endian
//
// # Witness Slots
//
// An Authorizer reads the signature from a configurable witness slot of a
// Spend and derives the digest from the transaction identifier, from its
// EIP-191 personal-sign hash, or from a second witness slot:
//
//	authorizer := evmauth.NewAuthorizer(config).
//	    WithSignatureSlot(1).
//	    WithDigestSource(evmauth.DigestPersonalSign)
//
//	decision := authorizer.AuthorizeSpend(tx)
//
// Inputs are independent, so AuthorizeBatch evaluates them in parallel, and a
// VerdictCache can memoize decisions per (digest, witness) pair.
package evmauth
