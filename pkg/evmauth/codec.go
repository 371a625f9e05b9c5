package evmauth

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Native recovery marker conventions seen in external signers.
const (
	// RecoveryBaseRaw is used by signers that emit the bare recovery id {0,1}.
	RecoveryBaseRaw uint8 = 0

	// RecoveryBaseLegacy is used by wallets that emit {27,28}.
	RecoveryBaseLegacy uint8 = 27
)

var (
	// recoveryBit is 1<<255, the bit of s borrowed for the recovery id.
	recoveryBit = new(uint256.Int).Lsh(uint256.NewInt(1), 255)

	// sMask is 2^255-1 and clears the borrowed bit.
	sMask = new(uint256.Int).Sub(recoveryBit, uint256.NewInt(1))
)

// Codec converts between Signature and CompactSignature for one native
// recovery marker convention. The zero value uses RecoveryBaseRaw.
type Codec struct {
	base uint8
}

// NewCodec returns a codec that accepts the markers base and base+1.
func NewCodec(base uint8) Codec {
	return Codec{base: base}
}

// RawCodec handles signers emitting {0,1}.
var RawCodec = NewCodec(RecoveryBaseRaw)

// LegacyCodec handles signers emitting {27,28}.
var LegacyCodec = NewCodec(RecoveryBaseLegacy)

// RecoveryBase returns the offset subtracted from native markers.
func (c Codec) RecoveryBase() uint8 { return c.base }

// Normalize maps a native marker onto a recovery id in {0,1}.
func (c Codec) Normalize(v uint8) (uint8, error) {
	id := int(v) - int(c.base)
	if id != 0 && id != 1 {
		return 0, fmt.Errorf("%w: marker %d not in {%d,%d}", ErrInvalidRecoveryID, v, c.base, int(c.base)+1)
	}
	return uint8(id), nil
}

// Encode folds the recovery id into the top bit of s and writes r and s
// big-endian into a CompactSignature.
func (c Codec) Encode(sig Signature) (CompactSignature, error) {
	var cs CompactSignature

	recID, err := c.Normalize(sig.V)
	if err != nil {
		return cs, err
	}
	if sig.R == nil || sig.S == nil {
		return cs, fmt.Errorf("%w: missing r or s", ErrInvalidSignature)
	}
	if !sig.S.Lt(recoveryBit) {
		return cs, fmt.Errorf("%w: s overlaps the recovery bit", ErrInvalidSignature)
	}

	// s' = s | (recoveryId << 255)
	shifted := new(uint256.Int).Lsh(uint256.NewInt(uint64(recID)), 255)
	yParityAndS := new(uint256.Int).Or(sig.S, shifted)

	r := sig.R.Bytes32()
	s := yParityAndS.Bytes32()
	copy(cs[:32], r[:])
	copy(cs[32:], s[:])
	return cs, nil
}

// Decode splits a CompactSignature back into r, s and the native marker.
// Any 64-byte pattern decodes; validity is decided by recovery.
func (c Codec) Decode(cs CompactSignature) Signature {
	r := new(uint256.Int).SetBytes32(cs[:32])
	yParityAndS := new(uint256.Int).SetBytes32(cs[32:])

	recID := new(uint256.Int).Rsh(yParityAndS, 255).Uint64()
	s := new(uint256.Int).And(yParityAndS, sMask)

	return Signature{R: r, S: s, V: c.base + uint8(recID)}
}

// SplitRSV parses a 65-byte r||s||v signature without normalizing v.
func SplitRSV(rsv []byte) (Signature, error) {
	if len(rsv) != RSVSignatureLength {
		return Signature{}, fmt.Errorf("%w: rsv signature must be %d bytes, got %d", ErrInvalidInputLength, RSVSignatureLength, len(rsv))
	}
	return Signature{
		R: new(uint256.Int).SetBytes32(rsv[:32]),
		S: new(uint256.Int).SetBytes32(rsv[32:64]),
		V: rsv[64],
	}, nil
}

// EncodeRSV encodes a 65-byte r||s||v signature as produced by wallets.
func (c Codec) EncodeRSV(rsv []byte) (CompactSignature, error) {
	sig, err := SplitRSV(rsv)
	if err != nil {
		return CompactSignature{}, err
	}
	return c.Encode(sig)
}

// ExpandRSV re-expands a compact signature into r||s||v with v in this
// codec's native convention.
func (c Codec) ExpandRSV(cs CompactSignature) []byte {
	sig := c.Decode(cs)
	out := make([]byte, RSVSignatureLength)
	r := sig.R.Bytes32()
	s := sig.S.Bytes32()
	copy(out[:32], r[:])
	copy(out[32:64], s[:])
	out[64] = sig.V
	return out
}
