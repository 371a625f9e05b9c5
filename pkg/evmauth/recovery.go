package evmauth

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// compactMagicOffset is the header offset of the 65-byte recoverable format
// understood by ecdsa.RecoverCompact (27 + recovery code, uncompressed key).
const compactMagicOffset = 27

// RecoverPublicKey reconstructs the public key that produced sig over digest.
//
// The digest is used exactly as given. It must be the same pre-image the
// signer signed; a digest computed under a different convention recovers an
// unrelated key instead of failing.
func RecoverPublicKey(digest []byte, sig CompactSignature) (*secp256k1.PublicKey, error) {
	if len(digest) != DigestLength {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidDigest, DigestLength, len(digest))
	}

	// Clear the borrowed bit of s and move the recovery id into the header
	// byte: <27+recid><r><s>.
	var recoverable [RSVSignatureLength]byte
	recoverable[0] = compactMagicOffset + sig.RecoveryID()
	copy(recoverable[1:33], sig[:32])
	copy(recoverable[33:], sig[32:])
	recoverable[33] &= 0x7f

	pub, _, err := ecdsa.RecoverCompact(recoverable[:], digest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPointNotOnCurve, err)
	}
	return pub, nil
}

// IdentifierFromPublicKey derives the 20-byte account identifier of a public
// key: the last 20 bytes of keccak256 over the uncompressed X||Y coordinates.
func IdentifierFromPublicKey(pub *secp256k1.PublicKey) common.Address {
	uncompressed := pub.SerializeUncompressed()
	return common.BytesToAddress(crypto.Keccak256(uncompressed[1:])[12:])
}

// RecoverIdentifier recovers the account identifier that signed digest.
func RecoverIdentifier(digest []byte, sig CompactSignature) (common.Address, error) {
	pub, err := RecoverPublicKey(digest, sig)
	if err != nil {
		return common.Address{}, err
	}
	return IdentifierFromPublicKey(pub), nil
}

// RecoverAddress recovers the signer and pads it into an Address.
func RecoverAddress(digest []byte, sig CompactSignature) (Address, error) {
	id, err := RecoverIdentifier(digest, sig)
	if err != nil {
		return Address{}, err
	}
	return AddressFromIdentifier(id), nil
}
