// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Factomatic Ltd.

package keys

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec"
	"github.com/mr-tron/base58"

	"github.com/factomatic/factom-did/types"
)

// ECDSASecp256k1 is an ECDSA key pair over the secp256k1 curve. The public key
// is the 33-byte compressed point and the private key is the 32-byte scalar,
// both base58-encoded in their canonical text forms. Signatures are
// DER-encoded.
type ECDSASecp256k1 struct {
	pub  *btcec.PublicKey
	priv *btcec.PrivateKey
}

// GenerateECDSA creates a fresh secp256k1 key pair.
func GenerateECDSA() (*ECDSASecp256k1, error) {
	priv, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		return nil, fmt.Errorf("keys: generate secp256k1 key: %w", err)
	}
	return &ECDSASecp256k1{pub: priv.PubKey(), priv: priv}, nil
}

// NewECDSA reconstructs a secp256k1 key pair from base58-encoded key material.
// privateKey may be empty for a public-only pair.
func NewECDSA(publicKey, privateKey string) (*ECDSASecp256k1, error) {
	pubBytes, err := base58.Decode(publicKey)
	if err != nil {
		return nil, &types.ErrMalformedPublicKey{Reason: err.Error()}
	}
	if len(pubBytes) != btcec.PubKeyBytesLenCompressed {
		return nil, &types.ErrMalformedPublicKey{
			Reason: fmt.Sprintf("expected %d compressed secp256k1 point bytes, got %d", btcec.PubKeyBytesLenCompressed, len(pubBytes)),
		}
	}
	pub, err := btcec.ParsePubKey(pubBytes, btcec.S256())
	if err != nil {
		return nil, &types.ErrMalformedPublicKey{Reason: err.Error()}
	}

	k := &ECDSASecp256k1{pub: pub}

	if privateKey != "" {
		privBytes, err := base58.Decode(privateKey)
		if err != nil {
			return nil, &types.ErrMalformedPrivateKey{Reason: err.Error()}
		}
		if len(privBytes) != btcec.PrivKeyBytesLen {
			return nil, &types.ErrMalformedPrivateKey{
				Reason: fmt.Sprintf("expected %d secp256k1 scalar bytes, got %d", btcec.PrivKeyBytesLen, len(privBytes)),
			}
		}
		priv, derived := btcec.PrivKeyFromBytes(btcec.S256(), privBytes)
		if !derived.IsEqual(pub) {
			return nil, &types.ErrKeyPairMismatch{}
		}
		k.priv = priv
	}

	return k, nil
}

// KeyType returns types.KeyTypeECDSA.
func (k *ECDSASecp256k1) KeyType() types.KeyType { return types.KeyTypeECDSA }

// OnChainField returns "publicKeyBase58".
func (k *ECDSASecp256k1) OnChainField() string { return "publicKeyBase58" }

// HasPrivate reports whether the pair can sign.
func (k *ECDSASecp256k1) HasPrivate() bool { return k.priv != nil }

// PublicString returns the base58-encoded compressed public key point.
func (k *ECDSASecp256k1) PublicString() string {
	return base58.Encode(k.pub.SerializeCompressed())
}

// PrivateString returns the base58-encoded 32-byte private scalar.
func (k *ECDSASecp256k1) PrivateString() (string, error) {
	if k.priv == nil {
		return "", &types.ErrMissingPrivateKey{KeyType: string(types.KeyTypeECDSA)}
	}
	return base58.Encode(k.priv.Serialize()), nil
}

// Sign hashes message with SHA-256 and produces a DER-encoded signature over
// the digest.
func (k *ECDSASecp256k1) Sign(message []byte) ([]byte, error) {
	if k.priv == nil {
		return nil, &types.ErrMissingPrivateKey{KeyType: string(types.KeyTypeECDSA)}
	}
	digest := sha256.Sum256(message)
	sig, err := k.priv.Sign(digest[:])
	if err != nil {
		return nil, fmt.Errorf("keys: secp256k1 sign: %w", err)
	}
	return sig.Serialize(), nil
}

// Verify reports whether the DER-encoded signature is valid over the SHA-256
// digest of message.
func (k *ECDSASecp256k1) Verify(message, signature []byte) (bool, error) {
	sig, err := btcec.ParseDERSignature(signature, btcec.S256())
	if err != nil {
		return false, &types.ErrMalformedSignature{Reason: err.Error()}
	}
	digest := sha256.Sum256(message)
	return sig.Verify(digest[:], k.pub), nil
}

// Equal reports whether other is a secp256k1 pair with the same public key.
func (k *ECDSASecp256k1) Equal(other KeyPair) bool {
	o, ok := other.(*ECDSASecp256k1)
	return ok && k.pub.IsEqual(o.pub)
}
