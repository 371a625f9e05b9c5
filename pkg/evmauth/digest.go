package evmauth

import (
	"github.com/ethereum/go-ethereum/accounts"
)

// DigestSource selects how the digest handed to the recovery engine is
// obtained from a spend.
type DigestSource uint8

const (
	// DigestTransactionID uses the transaction identifier as the digest.
	DigestTransactionID DigestSource = iota

	// DigestPersonalSign uses the EIP-191 personal message hash of the
	// transaction identifier. Browser wallets sign this form when asked to
	// personal_sign the identifier.
	DigestPersonalSign

	// DigestAuxiliaryWitness reads a 32-byte digest from a second witness
	// slot. The slot content is trusted as given.
	DigestAuxiliaryWitness
)

// String returns the string representation of the digest source.
func (s DigestSource) String() string {
	switch s {
	case DigestTransactionID:
		return "transaction_id"
	case DigestPersonalSign:
		return "personal_sign"
	case DigestAuxiliaryWitness:
		return "auxiliary_witness"
	default:
		return "unknown"
	}
}

// ParseDigestSource maps a configuration string onto a DigestSource.
func ParseDigestSource(s string) (DigestSource, bool) {
	switch s {
	case "", "transaction_id", "raw":
		return DigestTransactionID, true
	case "personal_sign", "eip191":
		return DigestPersonalSign, true
	case "auxiliary_witness", "aux":
		return DigestAuxiliaryWitness, true
	default:
		return 0, false
	}
}

// PersonalSignDigest returns keccak256("\x19Ethereum Signed Message:\n32" || id),
// the digest a wallet signs for personal_sign over a 32-byte identifier.
//
// This belongs to the digest source, not to the kernel: Authorize never calls it.
func PersonalSignDigest(id MessageDigest) MessageDigest {
	var d MessageDigest
	copy(d[:], accounts.TextHash(id[:]))
	return d
}
