package evmauth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

const fixturesDir = "../../fixtures"

// testKeyInfo mirrors fixtures/test_key_info.json.
type testKeyInfo struct {
	SignerAPrivateKey string `json:"signer_a_private_key"`
	SignerA           string `json:"signer_a"`
	SignerBPrivateKey string `json:"signer_b_private_key"`
	SignerB           string `json:"signer_b"`
}

// testVector mirrors one record of fixtures/test_vectors.json.
type testVector struct {
	Name       string `json:"name"`
	TxID       string `json:"tx_id"`
	DigestMode string `json:"digest_mode"`
	Digest     string `json:"digest"`
	R          string `json:"r"`
	S          string `json:"s"`
	V          uint8  `json:"v"`
	Compact    string `json:"compact"`
	Signer     string `json:"signer"`
	Address    string `json:"address"`
}

func (tv testVector) txID(t *testing.T) MessageDigest {
	t.Helper()
	d, err := ParseDigest(tv.TxID)
	require.NoError(t, err)
	return d
}

func (tv testVector) digest(t *testing.T) MessageDigest {
	t.Helper()
	d, err := ParseDigest(tv.Digest)
	require.NoError(t, err)
	return d
}

func (tv testVector) compact(t *testing.T) CompactSignature {
	t.Helper()
	cs, err := ParseCompactSignatureHex(tv.Compact)
	require.NoError(t, err)
	return cs
}

func (tv testVector) signature() Signature {
	return Signature{R: hexToUint256(tv.R), S: hexToUint256(tv.S), V: tv.V}
}

func (tv testVector) signer() common.Address {
	return common.HexToAddress(tv.Signer)
}

func (tv testVector) address(t *testing.T) Address {
	t.Helper()
	addr, err := ParseAddress(tv.Address)
	require.NoError(t, err)
	return addr
}

func loadTestKeyInfo(t *testing.T) testKeyInfo {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(fixturesDir, "test_key_info.json"))
	require.NoError(t, err)

	var info testKeyInfo
	require.NoError(t, json.Unmarshal(data, &info))
	return info
}

func loadTestVectors(t *testing.T) []testVector {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(fixturesDir, "test_vectors.json"))
	require.NoError(t, err)

	var vectors []testVector
	require.NoError(t, json.Unmarshal(data, &vectors))
	require.NotEmpty(t, vectors)
	return vectors
}

// hexToUint256 decodes a 0x-prefixed value that may carry leading zeros.
func hexToUint256(s string) *uint256.Int {
	return new(uint256.Int).SetBytes(hexutil.MustDecode(s))
}

func mustAddress(t *testing.T, s string) Address {
	t.Helper()
	addr, err := ParseAddress(s)
	require.NoError(t, err)
	return addr
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
