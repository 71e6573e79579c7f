// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Factomatic Ltd.

package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/factomatic/factom-did/types"
)

// Ed25519 is an Ed25519 key pair. The public key is the 32-byte point and the
// private key is the standard 64-byte expanded secret key, both base58-encoded
// in their canonical text forms.
type Ed25519 struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
}

// GenerateEd25519 creates a fresh Ed25519 key pair from a random seed.
func GenerateEd25519() (*Ed25519, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("keys: generate Ed25519 key: %w", err)
	}
	return &Ed25519{pub: pub, priv: priv}, nil
}

// NewEd25519 reconstructs an Ed25519 key pair from base58-encoded key
// material. privateKey may be empty for a public-only pair.
func NewEd25519(publicKey, privateKey string) (*Ed25519, error) {
	pubBytes, err := base58.Decode(publicKey)
	if err != nil {
		return nil, &types.ErrMalformedPublicKey{Reason: err.Error()}
	}
	if len(pubBytes) != ed25519.PublicKeySize {
		return nil, &types.ErrMalformedPublicKey{
			Reason: fmt.Sprintf("expected %d Ed25519 public key bytes, got %d", ed25519.PublicKeySize, len(pubBytes)),
		}
	}

	k := &Ed25519{pub: ed25519.PublicKey(pubBytes)}

	if privateKey != "" {
		privBytes, err := base58.Decode(privateKey)
		if err != nil {
			return nil, &types.ErrMalformedPrivateKey{Reason: err.Error()}
		}
		if len(privBytes) != ed25519.PrivateKeySize {
			return nil, &types.ErrMalformedPrivateKey{
				Reason: fmt.Sprintf("expected %d Ed25519 private key bytes, got %d", ed25519.PrivateKeySize, len(privBytes)),
			}
		}
		// Re-derive the expanded key from its seed half. An expanded key
		// whose embedded public half disagrees with its seed would pass a
		// naive comparison but produce signatures that never verify.
		derived := ed25519.NewKeyFromSeed(privBytes[:ed25519.SeedSize])
		if !derived.Equal(ed25519.PrivateKey(privBytes)) || !k.pub.Equal(derived.Public().(ed25519.PublicKey)) {
			return nil, &types.ErrKeyPairMismatch{}
		}
		k.priv = ed25519.PrivateKey(privBytes)
	}

	return k, nil
}

// KeyType returns types.KeyTypeEd25519.
func (k *Ed25519) KeyType() types.KeyType { return types.KeyTypeEd25519 }

// OnChainField returns "publicKeyBase58".
func (k *Ed25519) OnChainField() string { return "publicKeyBase58" }

// HasPrivate reports whether the pair can sign.
func (k *Ed25519) HasPrivate() bool { return k.priv != nil }

// PublicString returns the base58-encoded public key.
func (k *Ed25519) PublicString() string { return base58.Encode(k.pub) }

// PrivateString returns the base58-encoded 64-byte expanded secret key.
func (k *Ed25519) PrivateString() (string, error) {
	if k.priv == nil {
		return "", &types.ErrMissingPrivateKey{KeyType: string(types.KeyTypeEd25519)}
	}
	return base58.Encode(k.priv), nil
}

// Sign hashes message with SHA-256 and signs the digest.
func (k *Ed25519) Sign(message []byte) ([]byte, error) {
	if k.priv == nil {
		return nil, &types.ErrMissingPrivateKey{KeyType: string(types.KeyTypeEd25519)}
	}
	digest := sha256.Sum256(message)
	return ed25519.Sign(k.priv, digest[:]), nil
}

// Verify reports whether signature is valid over the SHA-256 digest of message.
func (k *Ed25519) Verify(message, signature []byte) (bool, error) {
	if len(signature) != ed25519.SignatureSize {
		return false, &types.ErrMalformedSignature{
			Reason: fmt.Sprintf("expected %d Ed25519 signature bytes, got %d", ed25519.SignatureSize, len(signature)),
		}
	}
	digest := sha256.Sum256(message)
	return ed25519.Verify(k.pub, digest[:], signature), nil
}

// Equal reports whether other is an Ed25519 pair with the same public key.
func (k *Ed25519) Equal(other KeyPair) bool {
	o, ok := other.(*Ed25519)
	return ok && k.pub.Equal(o.pub)
}
