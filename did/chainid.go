// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Factomatic Ltd.

package did

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/factomatic/factom-did/types"
)

// nonceLength is the number of random bytes mixed into a fresh DID's chain id.
const nonceLength = 32

// CalculateChainID derives the chain identifier for a set of extIds: each
// extId is hashed with SHA-256 independently, the digests are concatenated in
// order, and the concatenation is hashed again. The result is lowercase hex.
func CalculateChainID(extIDs [][]byte) string {
	concat := make([]byte, 0, len(extIDs)*sha256.Size)
	for _, extID := range extIDs {
		digest := sha256.Sum256(extID)
		concat = append(concat, digest[:]...)
	}
	final := sha256.Sum256(concat)
	return hex.EncodeToString(final[:])
}

// generateNonce draws nonceLength bytes from the process-wide secure random
// source.
func generateNonce() ([]byte, error) {
	nonce := make([]byte, nonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("did: generate nonce: %w", err)
	}
	return nonce, nil
}

// newDIDID derives a fresh DID identifier from a nonce. The chain id is
// computed over exactly the creation entry's extId triple.
func newDIDID(network types.Network, nonce []byte) string {
	chainID := CalculateChainID([][]byte{
		[]byte(types.EntryTypeCreate),
		[]byte(types.EntrySchemaVersion),
		nonce,
	})
	return composeID(network, chainID)
}

// composeID assembles a DID identifier from a network and a chain id.
func composeID(network types.Network, chainID string) string {
	if network == types.NetworkUnspecified {
		return types.DIDMethodName + ":" + chainID
	}
	return types.DIDMethodName + ":" + string(network) + ":" + chainID
}

// chainIDFromID extracts the 64-hex-char chain id suffix of an identifier.
func chainIDFromID(id string) string {
	parts := strings.Split(id, ":")
	return parts[len(parts)-1]
}

// networkFromID derives the network from an identifier's structure. The
// identifier must already match the DID grammar.
func networkFromID(id string) types.Network {
	trimmed := strings.TrimPrefix(id, types.DIDMethodName+":")
	switch {
	case strings.HasPrefix(trimmed, string(types.NetworkMainnet)+":"):
		return types.NetworkMainnet
	case strings.HasPrefix(trimmed, string(types.NetworkTestnet)+":"):
		return types.NetworkTestnet
	default:
		return types.NetworkUnspecified
	}
}
