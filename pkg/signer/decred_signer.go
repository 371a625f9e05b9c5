package signer

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/ethereum/go-ethereum/common"

	"github.com/mahdiidarabi/evmauth/pkg/evmauth"
)

var _ Signer = (*DecredSigner)(nil)

// DecredSigner signs with the decred secp256k1 implementation. Its compact
// output is <27+recid><r><s>; SignDigest reorders it to r||s||v.
type DecredSigner struct {
	privateKey *secp256k1.PrivateKey
	identifier common.Address
}

// NewDecredSigner creates a signer from a hex-encoded private key.
func NewDecredSigner(privateKeyHex string) (*DecredSigner, error) {
	raw, err := decodePrivateKey(privateKeyHex)
	if err != nil {
		return nil, err
	}
	key := secp256k1.PrivKeyFromBytes(raw)
	return &DecredSigner{
		privateKey: key,
		identifier: evmauth.IdentifierFromPublicKey(key.PubKey()),
	}, nil
}

func (s *DecredSigner) Identifier() common.Address { return s.identifier }

func (s *DecredSigner) RecoveryBase() uint8 { return evmauth.RecoveryBaseLegacy }

// SignDigest signs digest without further hashing.
func (s *DecredSigner) SignDigest(digest evmauth.MessageDigest) ([]byte, error) {
	compact := ecdsa.SignCompact(s.privateKey, digest[:], false)

	rsv := make([]byte, evmauth.RSVSignatureLength)
	copy(rsv[:64], compact[1:])
	rsv[64] = compact[0]
	return rsv, nil
}
