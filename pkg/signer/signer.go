package signer

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/mahdiidarabi/evmauth/pkg/evmauth"
)

// Signer is an external account able to sign digests.
type Signer interface {
	// Identifier returns the 20-byte account identifier of the signing key.
	Identifier() common.Address
	// SignDigest signs digest as-is and returns r||s||v.
	SignDigest(digest evmauth.MessageDigest) ([]byte, error)
	// RecoveryBase returns the offset of the v markers this signer emits.
	RecoveryBase() uint8
}

// Address returns the padded evmauth address of s.
func Address(s Signer) evmauth.Address {
	return evmauth.AddressFromIdentifier(s.Identifier())
}

// SignCompact signs digest with s and encodes the result for a witness slot.
func SignCompact(s Signer, digest evmauth.MessageDigest) (evmauth.CompactSignature, error) {
	rsv, err := s.SignDigest(digest)
	if err != nil {
		return evmauth.CompactSignature{}, fmt.Errorf("failed to sign digest: %w", err)
	}
	return evmauth.NewCodec(s.RecoveryBase()).EncodeRSV(rsv)
}

// Type names a signer implementation.
type Type string

const (
	TypeEthereum Type = "ethereum"
	TypeFirefly  Type = "firefly"
	TypeDecred   Type = "decred"
)

// New creates a signer of the given type from a hex-encoded private key.
func New(signerType Type, privateKeyHex string) (Signer, error) {
	switch signerType {
	case TypeEthereum, "":
		return NewEthereumSigner(privateKeyHex)
	case TypeFirefly:
		return NewFireflySigner(privateKeyHex)
	case TypeDecred:
		return NewDecredSigner(privateKeyHex)
	default:
		return nil, fmt.Errorf("unsupported signer type: %s", signerType)
	}
}

func decodePrivateKey(privateKeyHex string) ([]byte, error) {
	if !strings.HasPrefix(privateKeyHex, "0x") && !strings.HasPrefix(privateKeyHex, "0X") {
		privateKeyHex = "0x" + privateKeyHex
	}
	key, err := hexutil.Decode(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("could not parse private key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}
