// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Factomatic Ltd.

package did

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateChainIDDeterministic(t *testing.T) {
	extIDs := [][]byte{[]byte("DIDManagement"), []byte("1.0.0"), []byte("some-nonce")}

	first := CalculateChainID(extIDs)
	second := CalculateChainID(extIDs)
	assert.Equal(t, first, second)

	require.Regexp(t, regexp.MustCompile(`^[a-f0-9]{64}$`), first)
}

func TestCalculateChainIDSensitivity(t *testing.T) {
	base := [][]byte{[]byte("DIDManagement"), []byte("1.0.0"), []byte("some-nonce")}
	baseID := CalculateChainID(base)

	// Changing any byte of any extId changes the digest.
	changed := [][]byte{[]byte("DIDManagement"), []byte("1.0.0"), []byte("some-nonce" + "x")}
	assert.NotEqual(t, baseID, CalculateChainID(changed))

	changed = [][]byte{[]byte("dIDManagement"), []byte("1.0.0"), []byte("some-nonce")}
	assert.NotEqual(t, baseID, CalculateChainID(changed))

	// Reordering extIds changes the digest.
	reordered := [][]byte{[]byte("1.0.0"), []byte("DIDManagement"), []byte("some-nonce")}
	assert.NotEqual(t, baseID, CalculateChainID(reordered))
}

func TestCalculateChainIDAlgorithm(t *testing.T) {
	// Each extId is hashed independently; the digest concatenation is hashed
	// again.
	extIDs := [][]byte{[]byte("a"), []byte("b")}

	ha := sha256.Sum256([]byte("a"))
	hb := sha256.Sum256([]byte("b"))
	outer := sha256.Sum256(append(ha[:], hb[:]...))

	assert.Equal(t, hex.EncodeToString(outer[:]), CalculateChainID(extIDs))
}
