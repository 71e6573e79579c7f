// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Factomatic Ltd.

// Package keys implements the asymmetric key algorithms used by factom DIDs:
// Ed25519, ECDSA over secp256k1, and RSA. All three are usable through the
// KeyPair interface; algorithm dispatch is by key type tag.
//
// Every Sign implementation hashes the message with SHA-256 and signs the
// digest. The pre-hash is part of the DID method protocol, so it is performed
// here rather than delegated to the signature algorithm's own hashing.
package keys

import (
	"github.com/factomatic/factom-did/types"
)

// KeyPair is the common capability implemented by all supported key algorithms.
type KeyPair interface {
	// KeyType returns the algorithm tag, which is also the on-chain "type" value.
	KeyType() types.KeyType
	// Sign hashes message with SHA-256 and signs the digest. It fails with
	// types.ErrMissingPrivateKey when the pair holds no private key.
	Sign(message []byte) ([]byte, error)
	// Verify reports whether signature is a valid signature over the SHA-256
	// digest of message. A well-formed but wrong signature yields (false, nil);
	// a structurally invalid one fails with types.ErrMalformedSignature.
	Verify(message, signature []byte) (bool, error)
	// PublicString returns the algorithm's canonical text encoding of the
	// public key: base58 for Ed25519 and ECDSA, PEM for RSA.
	PublicString() string
	// PrivateString returns the canonical text encoding of the private key,
	// or types.ErrMissingPrivateKey for a public-only pair.
	PrivateString() (string, error)
	// OnChainField names the entry-object field that carries the public key.
	OnChainField() string
	// HasPrivate reports whether the pair can sign.
	HasPrivate() bool
	// Equal reports whether other uses the same algorithm and public key material.
	Equal(other KeyPair) bool
}

// Generate creates a fresh key pair of the given algorithm using the
// process-wide cryptographically secure random source.
func Generate(keyType types.KeyType) (KeyPair, error) {
	switch keyType {
	case types.KeyTypeEd25519:
		return GenerateEd25519()
	case types.KeyTypeECDSA:
		return GenerateECDSA()
	case types.KeyTypeRSA:
		return GenerateRSA()
	default:
		return nil, &types.ErrInvalidKeyType{KeyType: string(keyType)}
	}
}

// New reconstructs a key pair of the given algorithm from its canonical text
// encodings. privateKey may be empty, yielding a public-only pair. When both
// are supplied, the public key must be derivable from the private key;
// otherwise construction fails with types.ErrKeyPairMismatch.
func New(keyType types.KeyType, publicKey, privateKey string) (KeyPair, error) {
	switch keyType {
	case types.KeyTypeEd25519:
		return NewEd25519(publicKey, privateKey)
	case types.KeyTypeECDSA:
		return NewECDSA(publicKey, privateKey)
	case types.KeyTypeRSA:
		return NewRSA(publicKey, privateKey)
	default:
		return nil, &types.ErrInvalidKeyType{KeyType: string(keyType)}
	}
}
