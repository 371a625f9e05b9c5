package evmauth

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

const (
	// CompactSignatureLength is the size of the wire format: 32 bytes of r
	// followed by 32 bytes of s with the recovery id folded into bit 255.
	CompactSignatureLength = 64

	// RSVSignatureLength is the size of the r||s||v form produced by wallets.
	RSVSignatureLength = 65

	// DigestLength is the size of a message digest.
	DigestLength = 32
)

// Secp256k1N is the order of the secp256k1 group.
var Secp256k1N = uint256.MustFromHex("0xfffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")

// Signature is an ECDSA signature as produced by an external signer.
type Signature struct {
	R *uint256.Int // r component
	S *uint256.Int // s component, bit 255 clear
	V uint8        // native recovery marker (base offset + recovery id)
}

// Validate reports whether r and s are in [1, n-1].
func (sig Signature) Validate() error {
	if sig.R == nil || sig.S == nil {
		return fmt.Errorf("%w: missing r or s", ErrInvalidSignature)
	}
	if sig.R.IsZero() || !sig.R.Lt(Secp256k1N) {
		return fmt.Errorf("%w: r out of range", ErrInvalidSignature)
	}
	if sig.S.IsZero() || !sig.S.Lt(Secp256k1N) {
		return fmt.Errorf("%w: s out of range", ErrInvalidSignature)
	}
	return nil
}

// Equal reports whether both signatures carry the same r, s and marker.
func (sig Signature) Equal(other Signature) bool {
	if sig.V != other.V {
		return false
	}
	if sig.R == nil || sig.S == nil || other.R == nil || other.S == nil {
		return sig.R == other.R && sig.S == other.S
	}
	return sig.R.Eq(other.R) && sig.S.Eq(other.S)
}

// MessageDigest is the 32-byte value a signature commits to. The kernel treats
// it as opaque and never hashes it again.
type MessageDigest [DigestLength]byte

// DigestFromBytes copies b into a MessageDigest.
func DigestFromBytes(b []byte) (MessageDigest, error) {
	var d MessageDigest
	if len(b) != DigestLength {
		return d, fmt.Errorf("%w: digest must be %d bytes, got %d", ErrInvalidDigest, DigestLength, len(b))
	}
	copy(d[:], b)
	return d, nil
}

// ParseDigest decodes a 0x-prefixed hex digest.
func ParseDigest(s string) (MessageDigest, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return MessageDigest{}, fmt.Errorf("failed to decode digest: %w", err)
	}
	return DigestFromBytes(b)
}

// Bytes returns the digest as a slice.
func (d MessageDigest) Bytes() []byte { return d[:] }

// Hex returns the 0x-prefixed hex form of the digest.
func (d MessageDigest) Hex() string { return hexutil.Encode(d[:]) }

func (d MessageDigest) String() string { return d.Hex() }

// CompactSignature is the 64-byte wire encoding of a Signature.
type CompactSignature [CompactSignatureLength]byte

// ParseCompactSignature copies a 64-byte buffer into a CompactSignature.
func ParseCompactSignature(b []byte) (CompactSignature, error) {
	var cs CompactSignature
	if len(b) != CompactSignatureLength {
		return cs, fmt.Errorf("%w: compact signature must be %d bytes, got %d", ErrInvalidInputLength, CompactSignatureLength, len(b))
	}
	copy(cs[:], b)
	return cs, nil
}

// ParseCompactSignatureHex decodes a 0x-prefixed hex compact signature.
func ParseCompactSignatureHex(s string) (CompactSignature, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return CompactSignature{}, fmt.Errorf("failed to decode compact signature: %w", err)
	}
	return ParseCompactSignature(b)
}

// Bytes returns a copy of the encoded signature.
func (cs CompactSignature) Bytes() []byte {
	out := make([]byte, CompactSignatureLength)
	copy(out, cs[:])
	return out
}

// RecoveryID returns the recovery bit stored in the top bit of s.
func (cs CompactSignature) RecoveryID() uint8 { return cs[32] >> 7 }

// Hex returns the 0x-prefixed hex form of the signature.
func (cs CompactSignature) Hex() string { return hexutil.Encode(cs[:]) }

func (cs CompactSignature) String() string { return cs.Hex() }

// MarshalJSON encodes the signature as a hex string.
func (cs CompactSignature) MarshalJSON() ([]byte, error) {
	return json.Marshal(cs.Hex())
}

// UnmarshalJSON decodes a hex string into the signature.
func (cs *CompactSignature) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}
	parsed, err := ParseCompactSignatureHex(hexStr)
	if err != nil {
		return err
	}
	*cs = parsed
	return nil
}
