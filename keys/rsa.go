// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Factomatic Ltd.

package keys

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/factomatic/factom-did/types"
)

// rsaKeyBits is the modulus size for generated RSA keys.
const rsaKeyBits = 2048

// RSA is an RSA-2048 key pair. The public key is PEM-encoded in SPKI form and
// the private key in PKCS#8 form. Signatures use the PKCS#1 v1.5 scheme with
// SHA-256.
type RSA struct {
	pub  *rsa.PublicKey
	priv *rsa.PrivateKey

	// PEM encodings are fixed at construction so the text forms are stable.
	pubPEM  string
	privPEM string
}

// GenerateRSA creates a fresh RSA-2048 key pair.
func GenerateRSA() (*RSA, error) {
	priv, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, fmt.Errorf("keys: generate RSA key: %w", err)
	}
	k := &RSA{pub: &priv.PublicKey, priv: priv}
	if err := k.encodePEM(); err != nil {
		return nil, err
	}
	return k, nil
}

// NewRSA reconstructs an RSA key pair from PEM-encoded key material: SPKI for
// the public key, PKCS#8 for the private key. privateKey may be empty for a
// public-only pair.
func NewRSA(publicKey, privateKey string) (*RSA, error) {
	block, _ := pem.Decode([]byte(publicKey))
	if block == nil {
		return nil, &types.ErrMalformedPublicKey{Reason: "not valid PEM"}
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, &types.ErrMalformedPublicKey{Reason: err.Error()}
	}
	pub, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, &types.ErrMalformedPublicKey{Reason: "PEM block does not hold an RSA public key"}
	}

	k := &RSA{pub: pub}

	if privateKey != "" {
		privBlock, _ := pem.Decode([]byte(privateKey))
		if privBlock == nil {
			return nil, &types.ErrMalformedPrivateKey{Reason: "not valid PEM"}
		}
		parsedPriv, err := x509.ParsePKCS8PrivateKey(privBlock.Bytes)
		if err != nil {
			return nil, &types.ErrMalformedPrivateKey{Reason: err.Error()}
		}
		priv, ok := parsedPriv.(*rsa.PrivateKey)
		if !ok {
			return nil, &types.ErrMalformedPrivateKey{Reason: "PEM block does not hold an RSA private key"}
		}
		if !priv.PublicKey.Equal(pub) {
			return nil, &types.ErrKeyPairMismatch{}
		}
		k.priv = priv
	}

	if err := k.encodePEM(); err != nil {
		return nil, err
	}
	return k, nil
}

// encodePEM caches the canonical PEM text forms of the key material.
func (k *RSA) encodePEM() error {
	pubDER, err := x509.MarshalPKIXPublicKey(k.pub)
	if err != nil {
		return fmt.Errorf("keys: marshal RSA public key: %w", err)
	}
	k.pubPEM = string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER}))

	if k.priv != nil {
		privDER, err := x509.MarshalPKCS8PrivateKey(k.priv)
		if err != nil {
			return fmt.Errorf("keys: marshal RSA private key: %w", err)
		}
		k.privPEM = string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER}))
	}
	return nil
}

// KeyType returns types.KeyTypeRSA.
func (k *RSA) KeyType() types.KeyType { return types.KeyTypeRSA }

// OnChainField returns "publicKeyPem".
func (k *RSA) OnChainField() string { return "publicKeyPem" }

// HasPrivate reports whether the pair can sign.
func (k *RSA) HasPrivate() bool { return k.priv != nil }

// PublicString returns the SPKI PEM encoding of the public key.
func (k *RSA) PublicString() string { return k.pubPEM }

// PrivateString returns the PKCS#8 PEM encoding of the private key.
func (k *RSA) PrivateString() (string, error) {
	if k.priv == nil {
		return "", &types.ErrMissingPrivateKey{KeyType: string(types.KeyTypeRSA)}
	}
	return k.privPEM, nil
}

// Sign hashes message with SHA-256 and signs the digest with PKCS#1 v1.5.
func (k *RSA) Sign(message []byte) ([]byte, error) {
	if k.priv == nil {
		return nil, &types.ErrMissingPrivateKey{KeyType: string(types.KeyTypeRSA)}
	}
	digest := sha256.Sum256(message)
	sig, err := rsa.SignPKCS1v15(rand.Reader, k.priv, crypto.SHA256, digest[:])
	if err != nil {
		return nil, fmt.Errorf("keys: RSA sign: %w", err)
	}
	return sig, nil
}

// Verify reports whether signature is a valid PKCS#1 v1.5 signature over the
// SHA-256 digest of message. The scheme cannot distinguish a malformed
// signature from a wrong one, so all failures yield (false, nil).
func (k *RSA) Verify(message, signature []byte) (bool, error) {
	digest := sha256.Sum256(message)
	if err := rsa.VerifyPKCS1v15(k.pub, crypto.SHA256, digest[:], signature); err != nil {
		return false, nil
	}
	return true, nil
}

// Equal reports whether other is an RSA pair with the same public key.
func (k *RSA) Equal(other KeyPair) bool {
	o, ok := other.(*RSA)
	return ok && k.pub.Equal(o.pub)
}
