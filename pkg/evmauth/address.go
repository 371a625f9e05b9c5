package evmauth

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	// AddressLength is the width of the address compared by the decision procedure.
	AddressLength = 32

	// IdentifierLength is the width of an external account identifier.
	IdentifierLength = common.AddressLength

	identifierOffset = AddressLength - IdentifierLength
)

// Address is a 32-byte value holding a 20-byte account identifier left-padded
// with zeros: bytes 0-11 are zero, bytes 12-31 are the identifier.
type Address [AddressLength]byte

// DeriveAddress pads a 20-byte raw account identifier into an Address.
func DeriveAddress(raw []byte) (Address, error) {
	var addr Address
	if len(raw) != IdentifierLength {
		return addr, fmt.Errorf("%w: identifier must be %d bytes, got %d", ErrInvalidInputLength, IdentifierLength, len(raw))
	}
	copy(addr[identifierOffset:], raw)
	return addr, nil
}

// AddressFromIdentifier pads an account identifier into an Address.
func AddressFromIdentifier(id common.Address) Address {
	var addr Address
	copy(addr[identifierOffset:], id[:])
	return addr
}

// ParseAddress decodes a 0x-prefixed hex string holding either a 20-byte
// identifier or an already padded 32-byte address.
func ParseAddress(s string) (Address, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return Address{}, fmt.Errorf("failed to decode address: %w", err)
	}
	switch len(b) {
	case IdentifierLength:
		return DeriveAddress(b)
	case AddressLength:
		var addr Address
		copy(addr[:], b)
		return addr, nil
	default:
		return Address{}, fmt.Errorf("%w: address must be %d or %d bytes, got %d", ErrInvalidInputLength, IdentifierLength, AddressLength, len(b))
	}
}

// Identifier returns the embedded account identifier. ok is false when the
// padding bytes are not all zero.
func (a Address) Identifier() (id common.Address, ok bool) {
	copy(id[:], a[identifierOffset:])
	var zero [identifierOffset]byte
	return id, bytes.Equal(a[:identifierOffset], zero[:])
}

// IsZero reports whether every byte of the address is zero.
func (a Address) IsZero() bool { return a == Address{} }

// Bytes returns a copy of the address bytes.
func (a Address) Bytes() []byte {
	out := make([]byte, AddressLength)
	copy(out, a[:])
	return out
}

// Hex returns the 0x-prefixed hex form of the address.
func (a Address) Hex() string { return hexutil.Encode(a[:]) }

func (a Address) String() string { return a.Hex() }

// MarshalJSON encodes the address as a hex string.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Hex())
}

// UnmarshalJSON accepts both 20-byte and 32-byte hex forms.
func (a *Address) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}
	parsed, err := ParseAddress(hexStr)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
