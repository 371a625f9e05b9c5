// Package signer provides the external signers that produce signatures the
// evmauth kernel authorizes.
//
// The kernel never holds private keys. These signers stand in for the wallet
// side of the flow in tools, examples and tests: each one signs a 32-byte
// digest and returns the 65-byte r||s||v form together with the recovery
// marker convention it uses.
//
//   - EthereumSigner: go-ethereum crypto.Sign, markers {0,1}
//   - FireflySigner: hyperledger firefly-signer, markers {27,28}
//   - DecredSigner: decred secp256k1 compact signatures, markers {27,28}
//
// Usage
//
//	s, err := signer.NewEthereumSigner(privateKeyHex)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	compact, err := signer.SignCompact(s, txID)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tx.AppendWitness(compact.Bytes())
package signer
