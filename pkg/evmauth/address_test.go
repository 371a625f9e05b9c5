package evmauth

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveAddress(t *testing.T) {
	raw := common.FromHex("0x2e988a386a799f506693793c6a5af6b54dfaabfb")

	addr, err := DeriveAddress(raw)
	require.NoError(t, err)

	assert.Equal(t, make([]byte, 12), addr[:12])
	assert.Equal(t, raw, addr[12:])
	assert.Equal(t, "0x0000000000000000000000002e988a386a799f506693793c6a5af6b54dfaabfb", addr.Hex())

	assert.Equal(t, addr, AddressFromIdentifier(common.BytesToAddress(raw)))
}

func TestDeriveAddress_InvalidLength(t *testing.T) {
	for _, n := range []int{0, 19, 21, 32} {
		_, err := DeriveAddress(make([]byte, n))
		assert.ErrorIs(t, err, ErrInvalidInputLength, "length %d", n)
	}
}

func TestParseAddress(t *testing.T) {
	want := mustAddress(t, "0x0000000000000000000000002e988a386a799f506693793c6a5af6b54dfaabfb")

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"identifier", "0x2e988a386a799f506693793c6a5af6b54dfaabfb", false},
		{"checksummed identifier", "0x2e988A386a799F506693793c6A5AF6B54dfAaBfB", false},
		{"padded", "0x0000000000000000000000002e988a386a799f506693793c6a5af6b54dfaabfb", false},
		{"no prefix", "2e988a386a799f506693793c6a5af6b54dfaabfb", true},
		{"short", "0x2e988a386a799f506693793c6a5af6b54dfaab", true},
		{"odd length", "0x2e988a386a799f506693793c6a5af6b54dfaabf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAddress(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestAddress_Identifier(t *testing.T) {
	addr := mustAddress(t, "0x2e988a386a799f506693793c6a5af6b54dfaabfb")
	id, ok := addr.Identifier()
	assert.True(t, ok)
	assert.Equal(t, common.HexToAddress("0x2e988a386a799f506693793c6a5af6b54dfaabfb"), id)

	addr[0] = 0x01
	_, ok = addr.Identifier()
	assert.False(t, ok, "non-zero padding must be reported")

	assert.True(t, Address{}.IsZero())
	assert.False(t, addr.IsZero())
}

func TestAddress_JSON(t *testing.T) {
	var holder struct {
		Signer Address `json:"signer"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"signer":"0x63fac9201494f0bd17b9892b9fae4d52fe3bd377"}`), &holder))

	out, err := json.Marshal(holder)
	require.NoError(t, err)
	assert.JSONEq(t, `{"signer":"0x00000000000000000000000063fac9201494f0bd17b9892b9fae4d52fe3bd377"}`, string(out))
}
