package evmauth

import "errors"

// Sentinel errors returned by the kernel. Callers match them with errors.Is.
//
// A rejected spend is not an error: address mismatches and failed recoveries
// are reported through Decision.
var (
	// ErrInvalidInputLength is returned when an address, identifier, witness or
	// signature buffer has the wrong number of bytes.
	ErrInvalidInputLength = errors.New("invalid input length")

	// ErrInvalidRecoveryID is returned when a native recovery marker is not one
	// of the two values accepted by the codec's base offset.
	ErrInvalidRecoveryID = errors.New("invalid recovery id")

	// ErrInvalidSignature is returned when a signature cannot be encoded, for
	// example when s already occupies the bit borrowed for the recovery id.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrPointNotOnCurve is returned when r and s do not describe a point on
	// secp256k1 for the given recovery id.
	ErrPointNotOnCurve = errors.New("recovery failed: point not on curve")

	// ErrInvalidDigest is returned when the message digest is not 32 bytes.
	ErrInvalidDigest = errors.New("recovery failed: invalid digest")
)
