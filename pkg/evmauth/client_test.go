package evmauth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_VerifyFile(t *testing.T) {
	tests := []struct {
		name   string
		parser SignatureParser
		file   string
	}{
		{"json", &JSONParser{}, "test_vectors.json"},
		{"csv", &CSVParser{}, "test_vectors.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient().WithParser(tt.parser)

			report, err := client.VerifyFile(context.Background(), filepath.Join(fixturesDir, tt.file), nil)
			require.NoError(t, err)
			require.Len(t, report.Results, 8)
			assert.Equal(t, 8, report.Accepted)
			assert.Equal(t, 0, report.Rejected)

			for i, tv := range loadTestVectors(t) {
				assert.Equal(t, tv.Name, report.Results[i].Name)
				assert.Equal(t, tv.address(t), report.Results[i].Expected)
			}
		})
	}
}

func TestClient_VerifyFile_ExpectedOverride(t *testing.T) {
	info := loadTestKeyInfo(t)
	signerA := mustAddress(t, info.SignerA)

	report, err := NewClient().VerifyFile(context.Background(), filepath.Join(fixturesDir, "test_vectors.json"), &signerA)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Accepted)
	assert.Equal(t, 4, report.Rejected)

	for _, res := range report.Results {
		assert.Equal(t, signerA, res.Expected)
		if !res.Decision.Accepted() {
			assert.Equal(t, ReasonAddressMismatch, res.Decision.Reason, res.Name)
		}
	}
}

func TestClient_VerifyRecords_NoExpected(t *testing.T) {
	tv := loadTestVectors(t)[0]
	records := []*SignedDigest{{Name: "orphan", Digest: tv.digest(t), Compact: tv.compact(t).Bytes()}}

	_, err := NewClient().VerifyRecords(context.Background(), records, nil)
	assert.ErrorContains(t, err, "orphan")
}

func TestClient_VerifyRecords_Malformed(t *testing.T) {
	tv := loadTestVectors(t)[0]
	expected := tv.address(t)
	records := []*SignedDigest{
		{Name: "ok", Digest: tv.digest(t), Compact: tv.compact(t).Bytes()},
		{Name: "short", Digest: tv.digest(t), Compact: tv.compact(t).Bytes()[:10]},
	}

	report, err := NewClient().VerifyRecords(context.Background(), records, &expected)
	require.NoError(t, err)
	assert.True(t, report.Results[0].Decision.Accepted())
	assert.Equal(t, ReasonMalformedWitness, report.Results[1].Decision.Reason)
	assert.Equal(t, 1, report.Rejected)
}

func TestClient_EncodeRSVHex(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	digest := ethcrypto.Keccak256([]byte("client"))
	rsv, err := ethcrypto.Sign(digest, key)
	require.NoError(t, err)

	client := NewClient().WithCodec(RawCodec)
	assert.Equal(t, RawCodec, client.Codec())

	cs, err := client.EncodeRSVHex(hexutil.Encode(rsv))
	require.NoError(t, err)

	id, err := RecoverIdentifier(digest, cs)
	require.NoError(t, err)
	assert.Equal(t, ethcrypto.PubkeyToAddress(key.PublicKey), id)

	_, err = NewClient().EncodeRSVHex(hexutil.Encode(rsv))
	assert.ErrorIs(t, err, ErrInvalidRecoveryID, "legacy codec rejects raw markers")

	_, err = client.EncodeRSVHex("0xzz")
	assert.Error(t, err)
}

func TestClient_WithCache(t *testing.T) {
	cache := newTestCache(t)
	client := NewClient().WithCache(cache)
	path := filepath.Join(fixturesDir, "test_vectors.json")

	first, err := client.VerifyFile(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, first.Accepted)
	assert.Equal(t, 8, cache.Len())

	second, err := client.VerifyFile(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(8), cache.Stats().Hits)
}
