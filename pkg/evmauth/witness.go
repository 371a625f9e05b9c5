package evmauth

import (
	"fmt"
)

// WitnessSlot indexes the ordered witness buffers of a transaction.
type WitnessSlot int

// Spend is the view of a transaction input the authorizer needs.
type Spend interface {
	// TransactionID returns the canonical identifier hash of the transaction.
	TransactionID() MessageDigest
	// Witness returns the buffer at slot, or false if there is none.
	Witness(slot WitnessSlot) ([]byte, bool)
}

// Transaction is a minimal Spend: an identifier and its witness buffers.
type Transaction struct {
	ID        MessageDigest
	Witnesses [][]byte
}

var _ Spend = (*Transaction)(nil)

// TransactionID implements Spend.
func (tx *Transaction) TransactionID() MessageDigest { return tx.ID }

// Witness implements Spend.
func (tx *Transaction) Witness(slot WitnessSlot) ([]byte, bool) {
	if slot < 0 || int(slot) >= len(tx.Witnesses) {
		return nil, false
	}
	return tx.Witnesses[slot], true
}

// AppendWitness adds a witness buffer and returns its slot. Signatures are
// appended after whatever witnesses the builder already placed, so the slot
// is only known at this point.
func (tx *Transaction) AppendWitness(w []byte) WitnessSlot {
	tx.Witnesses = append(tx.Witnesses, w)
	return WitnessSlot(len(tx.Witnesses) - 1)
}

// Authorizer binds an AuthorizationConfig to the witness conventions of a
// predicate: which slot carries the signature and where the digest comes from.
type Authorizer struct {
	config       AuthorizationConfig
	signatureIdx WitnessSlot
	source       DigestSource
	auxIdx       WitnessSlot
	batch        BatchConfig
}

// NewAuthorizer creates an authorizer reading the signature from slot 0 and
// using the transaction identifier as digest.
func NewAuthorizer(config AuthorizationConfig) *Authorizer {
	return &Authorizer{
		config:       config,
		signatureIdx: 0,
		source:       DigestTransactionID,
		auxIdx:       1,
		batch:        DefaultBatchConfig(),
	}
}

// WithSignatureSlot sets the witness slot carrying the compact signature.
func (a *Authorizer) WithSignatureSlot(slot WitnessSlot) *Authorizer {
	a.signatureIdx = slot
	return a
}

// WithDigestSource sets how the digest is obtained.
func (a *Authorizer) WithDigestSource(source DigestSource) *Authorizer {
	a.source = source
	return a
}

// WithAuxiliarySlot sets the slot read by DigestAuxiliaryWitness.
func (a *Authorizer) WithAuxiliarySlot(slot WitnessSlot) *Authorizer {
	a.auxIdx = slot
	return a
}

// WithBatchConfig sets the configuration used by AuthorizeBatch.
func (a *Authorizer) WithBatchConfig(config BatchConfig) *Authorizer {
	a.batch = config
	return a
}

// Config returns the authorization config.
func (a *Authorizer) Config() AuthorizationConfig { return a.config }

// SignatureSlot returns the witness slot carrying the compact signature.
func (a *Authorizer) SignatureSlot() WitnessSlot { return a.signatureIdx }

// DigestSource returns the configured digest source.
func (a *Authorizer) DigestSource() DigestSource { return a.source }

// Digest returns the digest the signature over spend is checked against.
func (a *Authorizer) Digest(spend Spend) ([]byte, error) {
	switch a.source {
	case DigestTransactionID:
		id := spend.TransactionID()
		return id[:], nil
	case DigestPersonalSign:
		d := PersonalSignDigest(spend.TransactionID())
		return d[:], nil
	case DigestAuxiliaryWitness:
		aux, ok := spend.Witness(a.auxIdx)
		if !ok {
			return nil, fmt.Errorf("%w: auxiliary witness slot %d missing", ErrInvalidDigest, a.auxIdx)
		}
		return aux, nil
	default:
		return nil, fmt.Errorf("%w: unknown digest source %d", ErrInvalidDigest, a.source)
	}
}

// AuthorizeSpend runs the decision procedure against the designated witness
// slot of spend.
func (a *Authorizer) AuthorizeSpend(spend Spend) Decision {
	witness, ok := spend.Witness(a.signatureIdx)
	if !ok {
		return reject(ReasonMissingWitness, Address{}, fmt.Errorf("%w: witness slot %d missing", ErrInvalidInputLength, a.signatureIdx))
	}
	if len(witness) != CompactSignatureLength {
		return reject(ReasonMalformedWitness, Address{}, fmt.Errorf("%w: compact signature must be %d bytes, got %d", ErrInvalidInputLength, CompactSignatureLength, len(witness)))
	}

	digest, err := a.Digest(spend)
	if err != nil {
		return reject(ReasonInvalidDigest, Address{}, err)
	}
	return a.config.AuthorizeBytes(digest, witness)
}
