// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Factomatic Ltd.

package keys

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factomatic/factom-did/types"
)

var allKeyTypes = []types.KeyType{types.KeyTypeEd25519, types.KeyTypeECDSA, types.KeyTypeRSA}

func TestGenerateSignVerify(t *testing.T) {
	message := []byte("test message for all algorithms")

	for _, keyType := range allKeyTypes {
		t.Run(string(keyType), func(t *testing.T) {
			kp, err := Generate(keyType)
			require.NoError(t, err)
			require.True(t, kp.HasPrivate())
			require.Equal(t, keyType, kp.KeyType())

			signature, err := kp.Sign(message)
			require.NoError(t, err)

			valid, err := kp.Verify(message, signature)
			require.NoError(t, err)
			assert.True(t, valid)

			// A mutated message must not verify.
			mutated := append([]byte(nil), message...)
			mutated[0] ^= 0x01
			valid, err = kp.Verify(mutated, signature)
			require.NoError(t, err)
			assert.False(t, valid)

			// A mutated signature must not verify. Depending on the algorithm
			// the mutation may also render it structurally invalid.
			badSig := append([]byte(nil), signature...)
			badSig[len(badSig)-1] ^= 0x01
			valid, _ = kp.Verify(message, badSig)
			assert.False(t, valid)
		})
	}
}

func TestVerifyMalformedSignature(t *testing.T) {
	t.Run("Ed25519 wrong length", func(t *testing.T) {
		kp, err := GenerateEd25519()
		require.NoError(t, err)

		var target *types.ErrMalformedSignature
		_, err = kp.Verify([]byte("msg"), []byte("short"))
		require.ErrorAs(t, err, &target)
	})

	t.Run("ECDSA not DER", func(t *testing.T) {
		kp, err := GenerateECDSA()
		require.NoError(t, err)

		var target *types.ErrMalformedSignature
		_, err = kp.Verify([]byte("msg"), []byte{0x01, 0x02, 0x03})
		require.ErrorAs(t, err, &target)
	})
}

func TestEncodingRoundTrip(t *testing.T) {
	for _, keyType := range allKeyTypes {
		t.Run(string(keyType), func(t *testing.T) {
			original, err := Generate(keyType)
			require.NoError(t, err)

			privateText, err := original.PrivateString()
			require.NoError(t, err)

			restored, err := New(keyType, original.PublicString(), privateText)
			require.NoError(t, err)

			assert.Equal(t, original.PublicString(), restored.PublicString())
			restoredPrivate, err := restored.PrivateString()
			require.NoError(t, err)
			assert.Equal(t, privateText, restoredPrivate)
			assert.True(t, original.Equal(restored))

			// The restored pair must be able to sign for the original's
			// public key.
			message := []byte("round trip signing")
			signature, err := restored.Sign(message)
			require.NoError(t, err)
			valid, err := original.Verify(message, signature)
			require.NoError(t, err)
			assert.True(t, valid)
		})
	}
}

func TestPublicOnlyKey(t *testing.T) {
	for _, keyType := range allKeyTypes {
		t.Run(string(keyType), func(t *testing.T) {
			original, err := Generate(keyType)
			require.NoError(t, err)

			publicOnly, err := New(keyType, original.PublicString(), "")
			require.NoError(t, err)
			assert.False(t, publicOnly.HasPrivate())

			var missing *types.ErrMissingPrivateKey
			_, err = publicOnly.Sign([]byte("msg"))
			require.ErrorAs(t, err, &missing)
			_, err = publicOnly.PrivateString()
			require.ErrorAs(t, err, &missing)

			// Verification still works with only the public key.
			signature, err := original.Sign([]byte("msg"))
			require.NoError(t, err)
			valid, err := publicOnly.Verify([]byte("msg"), signature)
			require.NoError(t, err)
			assert.True(t, valid)
		})
	}
}

func TestKeyPairMismatch(t *testing.T) {
	for _, keyType := range allKeyTypes {
		t.Run(string(keyType), func(t *testing.T) {
			a, err := Generate(keyType)
			require.NoError(t, err)
			b, err := Generate(keyType)
			require.NoError(t, err)

			bPrivate, err := b.PrivateString()
			require.NoError(t, err)

			var mismatch *types.ErrKeyPairMismatch
			_, err = New(keyType, a.PublicString(), bPrivate)
			require.ErrorAs(t, err, &mismatch)
		})
	}
}

func TestEd25519InconsistentExpandedKey(t *testing.T) {
	a, err := GenerateEd25519()
	require.NoError(t, err)
	b, err := GenerateEd25519()
	require.NoError(t, err)

	aPrivate, err := a.PrivateString()
	require.NoError(t, err)
	aPrivBytes, err := base58.Decode(aPrivate)
	require.NoError(t, err)
	bPubBytes, err := base58.Decode(b.PublicString())
	require.NoError(t, err)

	// Splice a's seed with b's public key: the supplied public key matches
	// the seed, but the expanded key's embedded public half does not.
	forged := append(append([]byte(nil), aPrivBytes[:32]...), bPubBytes...)

	var mismatch *types.ErrKeyPairMismatch
	_, err = NewEd25519(a.PublicString(), base58.Encode(forged))
	require.ErrorAs(t, err, &mismatch)
}

func TestMalformedPublicKey(t *testing.T) {
	var malformed *types.ErrMalformedPublicKey

	// Invalid base58 characters.
	_, err := NewEd25519("0OIl", "")
	require.ErrorAs(t, err, &malformed)

	// Valid base58 of the wrong length.
	_, err = NewEd25519("abc", "")
	require.ErrorAs(t, err, &malformed)

	_, err = NewECDSA("abc", "")
	require.ErrorAs(t, err, &malformed)

	// Not PEM at all.
	_, err = NewRSA("definitely not pem", "")
	require.ErrorAs(t, err, &malformed)
}

func TestFactoryRejectsUnknownKeyType(t *testing.T) {
	var invalid *types.ErrInvalidKeyType

	_, err := Generate(types.KeyType("Curve25519"))
	require.ErrorAs(t, err, &invalid)

	_, err = New(types.KeyType(""), "", "")
	require.ErrorAs(t, err, &invalid)
}

func TestOnChainFieldNames(t *testing.T) {
	ed, err := GenerateEd25519()
	require.NoError(t, err)
	assert.Equal(t, "publicKeyBase58", ed.OnChainField())

	ec, err := GenerateECDSA()
	require.NoError(t, err)
	assert.Equal(t, "publicKeyBase58", ec.OnChainField())

	rsaKey, err := GenerateRSA()
	require.NoError(t, err)
	assert.Equal(t, "publicKeyPem", rsaKey.OnChainField())
}

func TestEqualDistinguishesKeys(t *testing.T) {
	a, err := GenerateEd25519()
	require.NoError(t, err)
	b, err := GenerateEd25519()
	require.NoError(t, err)
	ec, err := GenerateECDSA()
	require.NoError(t, err)

	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(ec))
}
