package signer

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/mahdiidarabi/evmauth/pkg/evmauth"
)

var _ Signer = (*EthereumSigner)(nil)

// EthereumSigner signs with go-ethereum. v is the bare recovery id.
type EthereumSigner struct {
	privateKey *ecdsa.PrivateKey
	identifier common.Address
}

// NewEthereumSigner creates a signer from a hex-encoded private key.
func NewEthereumSigner(privateKeyHex string) (*EthereumSigner, error) {
	raw, err := decodePrivateKey(privateKeyHex)
	if err != nil {
		return nil, err
	}
	key, err := ethcrypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("could not parse ethereum private key: %w", err)
	}
	return NewEthereumSignerFromKey(key), nil
}

// NewEthereumSignerFromKey wraps an existing key.
func NewEthereumSignerFromKey(key *ecdsa.PrivateKey) *EthereumSigner {
	return &EthereumSigner{
		privateKey: key,
		identifier: ethcrypto.PubkeyToAddress(key.PublicKey),
	}
}

// GenerateEthereumSigner creates a signer with a fresh random key.
func GenerateEthereumSigner() (*EthereumSigner, error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return NewEthereumSignerFromKey(key), nil
}

func (s *EthereumSigner) Identifier() common.Address { return s.identifier }

func (s *EthereumSigner) RecoveryBase() uint8 { return evmauth.RecoveryBaseRaw }

// SignDigest signs digest without further hashing.
func (s *EthereumSigner) SignDigest(digest evmauth.MessageDigest) ([]byte, error) {
	return ethcrypto.Sign(digest[:], s.privateKey)
}
