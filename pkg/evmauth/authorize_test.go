package evmauth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize_ValidSignature(t *testing.T) {
	for _, tv := range loadTestVectors(t) {
		t.Run(tv.Name, func(t *testing.T) {
			config := NewAuthorizationConfig(tv.address(t))

			d := config.Authorize(tv.digest(t), tv.compact(t).Bytes())
			assert.Equal(t, Accepted, d.Verdict)
			assert.Equal(t, ReasonNone, d.Reason)
			assert.Equal(t, tv.address(t), d.Recovered)
			assert.NoError(t, d.Err)
			assert.True(t, d.Accepted())
		})
	}
}

func TestAuthorize_WrongSigner(t *testing.T) {
	info := loadTestKeyInfo(t)
	signerB := mustAddress(t, info.SignerB)

	tv := loadTestVectors(t)[0]
	require.NotEqual(t, signerB, tv.address(t))

	d := NewAuthorizationConfig(signerB).Authorize(tv.digest(t), tv.compact(t).Bytes())
	assert.Equal(t, Rejected, d.Verdict)
	assert.Equal(t, ReasonAddressMismatch, d.Reason)
	assert.Equal(t, tv.address(t), d.Recovered)
	assert.False(t, d.Reason.Malformed())
}

func TestAuthorize_CorruptedSignature(t *testing.T) {
	for _, tv := range loadTestVectors(t) {
		config := NewAuthorizationConfig(tv.address(t))
		digest := tv.digest(t)

		for bit := 0; bit < 8; bit++ {
			witness := tv.compact(t).Bytes()
			witness[0] ^= 1 << bit

			d := config.Authorize(digest, witness)
			assert.Equal(t, Rejected, d.Verdict, "%s: bit %d", tv.Name, bit)
			assert.Contains(t, []Reason{ReasonRecoveryFailed, ReasonAddressMismatch}, d.Reason)
		}

		witness := tv.compact(t).Bytes()
		witness[0]++
		assert.False(t, config.Authorize(digest, witness).Accepted(), "%s: incremented first byte", tv.Name)
	}
}

func TestAuthorize_MalformedWitness(t *testing.T) {
	tv := loadTestVectors(t)[0]
	config := NewAuthorizationConfig(tv.address(t))
	compact := tv.compact(t).Bytes()

	tests := []struct {
		name    string
		witness []byte
	}{
		{"empty", nil},
		{"63 bytes", compact[:63]},
		{"65 bytes", append(tv.compact(t).Bytes(), 27)},
		{"rsv", LegacyCodec.ExpandRSV(tv.compact(t))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := config.Authorize(tv.digest(t), tt.witness)
			assert.Equal(t, Rejected, d.Verdict)
			assert.Equal(t, ReasonMalformedWitness, d.Reason)
			assert.True(t, d.Recovered.IsZero())
			assert.ErrorIs(t, d.Err, ErrInvalidInputLength)
			assert.True(t, d.Reason.Malformed())
		})
	}
}

func TestAuthorize_InvalidDigest(t *testing.T) {
	tv := loadTestVectors(t)[0]
	digest := tv.digest(t)

	d := NewAuthorizationConfig(tv.address(t)).AuthorizeBytes(digest[:16], tv.compact(t).Bytes())
	assert.Equal(t, Rejected, d.Verdict)
	assert.Equal(t, ReasonInvalidDigest, d.Reason)
	assert.ErrorIs(t, d.Err, ErrInvalidDigest)
}

func TestAuthorize_RecoveryFailed(t *testing.T) {
	tv := loadTestVectors(t)[0]
	witness := tv.compact(t).Bytes()
	copy(witness[:32], make([]byte, 32))

	d := NewAuthorizationConfig(tv.address(t)).Authorize(tv.digest(t), witness)
	assert.Equal(t, Rejected, d.Verdict)
	assert.Equal(t, ReasonRecoveryFailed, d.Reason)
	assert.True(t, errors.Is(d.Err, ErrPointNotOnCurve))
	assert.True(t, d.Recovered.IsZero())
}

// The expected address is compared over all 32 bytes.
func TestAuthorize_PaddingIsCompared(t *testing.T) {
	tv := loadTestVectors(t)[0]
	expected := tv.address(t)
	expected[0] = 0x01

	d := NewAuthorizationConfig(expected).Authorize(tv.digest(t), tv.compact(t).Bytes())
	assert.Equal(t, ReasonAddressMismatch, d.Reason)
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "accepted", accept(Address{}).String())
	assert.Equal(t, "rejected (address_mismatch)", reject(ReasonAddressMismatch, Address{}, nil).String())
	assert.Equal(t, "pending", Decision{}.String())
	assert.Equal(t, "unknown", Reason(99).String())
}
