package evmauth

import (
	"fmt"
)

// Verdict is the state of one authorization pass.
type Verdict uint8

const (
	// Pending is the state before the pass has run. Decisions returned by
	// Authorize are never Pending.
	Pending Verdict = iota
	Accepted
	Rejected
)

// String returns the string representation of the verdict.
func (v Verdict) String() string {
	switch v {
	case Pending:
		return "pending"
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Reason explains a Rejected verdict.
type Reason uint8

const (
	ReasonNone Reason = iota
	// ReasonMalformedWitness means the witness was not a 64-byte compact
	// signature. No curve work was done.
	ReasonMalformedWitness
	// ReasonMissingWitness means the designated witness slot does not exist.
	ReasonMissingWitness
	// ReasonInvalidDigest means the digest could not be used for recovery.
	ReasonInvalidDigest
	// ReasonRecoveryFailed means no public key could be recovered.
	ReasonRecoveryFailed
	// ReasonAddressMismatch means a key was recovered but it belongs to a
	// different account.
	ReasonAddressMismatch
)

// String returns the string representation of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonMalformedWitness:
		return "malformed_witness"
	case ReasonMissingWitness:
		return "missing_witness"
	case ReasonInvalidDigest:
		return "invalid_digest"
	case ReasonRecoveryFailed:
		return "recovery_failed"
	case ReasonAddressMismatch:
		return "address_mismatch"
	default:
		return "unknown"
	}
}

// Malformed reports whether the rejection was caused by structurally invalid
// input rather than by a valid signature from the wrong signer.
func (r Reason) Malformed() bool {
	return r == ReasonMalformedWitness || r == ReasonMissingWitness || r == ReasonInvalidDigest
}

// Decision is the outcome of one authorization pass.
type Decision struct {
	Verdict   Verdict
	Reason    Reason
	Recovered Address // zero unless a key was recovered
	Err       error   // underlying cause for malformed input or failed recovery
}

// Accepted reports whether the spend is authorized.
func (d Decision) Accepted() bool { return d.Verdict == Accepted }

func (d Decision) String() string {
	if d.Verdict == Rejected {
		return fmt.Sprintf("%s (%s)", d.Verdict, d.Reason)
	}
	return d.Verdict.String()
}

func accept(recovered Address) Decision {
	return Decision{Verdict: Accepted, Reason: ReasonNone, Recovered: recovered}
}

func reject(reason Reason, recovered Address, err error) Decision {
	return Decision{Verdict: Rejected, Reason: reason, Recovered: recovered, Err: err}
}

// AuthorizationConfig holds the address a spend must be signed by. It is set
// once at construction and is safe to share between goroutines.
type AuthorizationConfig struct {
	expected Address
}

// NewAuthorizationConfig returns a config expecting signatures from addr.
func NewAuthorizationConfig(addr Address) AuthorizationConfig {
	return AuthorizationConfig{expected: addr}
}

// Expected returns the configured address.
func (c AuthorizationConfig) Expected() Address { return c.expected }

// Authorize runs the decision procedure for one witness. The digest is the
// transaction's canonical identifier (or whatever the signer signed) and is
// not hashed again.
func (c AuthorizationConfig) Authorize(digest MessageDigest, witness []byte) Decision {
	return c.authorize(digest[:], witness)
}

// AuthorizeBytes is Authorize for a digest held in a slice. A digest of the
// wrong length is rejected with ReasonInvalidDigest.
func (c AuthorizationConfig) AuthorizeBytes(digest, witness []byte) Decision {
	return c.authorize(digest, witness)
}

func (c AuthorizationConfig) authorize(digest, witness []byte) Decision {
	sig, err := ParseCompactSignature(witness)
	if err != nil {
		return reject(ReasonMalformedWitness, Address{}, err)
	}
	if len(digest) != DigestLength {
		return reject(ReasonInvalidDigest, Address{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidDigest, DigestLength, len(digest)))
	}

	recovered, err := RecoverAddress(digest, sig)
	if err != nil {
		return reject(ReasonRecoveryFailed, Address{}, err)
	}
	if recovered != c.expected {
		return reject(ReasonAddressMismatch, recovered, nil)
	}
	return accept(recovered)
}
