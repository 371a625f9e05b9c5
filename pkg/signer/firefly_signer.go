package signer

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hyperledger/firefly-signer/pkg/secp256k1"

	"github.com/mahdiidarabi/evmauth/pkg/evmauth"
)

var _ Signer = (*FireflySigner)(nil)

// FireflySigner signs with hyperledger firefly-signer. v is 27 or 28, as
// returned by wallets.
type FireflySigner struct {
	keyPair *secp256k1.KeyPair
}

// NewFireflySigner creates a signer from a hex-encoded private key.
func NewFireflySigner(privateKeyHex string) (*FireflySigner, error) {
	raw, err := decodePrivateKey(privateKeyHex)
	if err != nil {
		return nil, err
	}
	return &FireflySigner{keyPair: secp256k1.KeyPairFromBytes(raw)}, nil
}

func (s *FireflySigner) Identifier() common.Address { return common.Address(s.keyPair.Address) }

func (s *FireflySigner) RecoveryBase() uint8 { return evmauth.RecoveryBaseLegacy }

// SignDigest signs digest without further hashing.
func (s *FireflySigner) SignDigest(digest evmauth.MessageDigest) ([]byte, error) {
	sig, err := s.keyPair.SignDirect(digest[:])
	if err != nil {
		return nil, err
	}
	if !sig.V.IsUint64() {
		return nil, fmt.Errorf("unexpected recovery marker %s", sig.V.String())
	}
	v := sig.V.Uint64()
	if v < uint64(evmauth.RecoveryBaseLegacy) {
		v += uint64(evmauth.RecoveryBaseLegacy)
	}

	// r||s||v, matching the wallet convention
	rsv := make([]byte, evmauth.RSVSignatureLength)
	sig.R.FillBytes(rsv[0:32])
	sig.S.FillBytes(rsv[32:64])
	rsv[64] = byte(v)
	return rsv, nil
}
