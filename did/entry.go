// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Factomatic Ltd.

package did

import (
	"fmt"

	"github.com/factomatic/factom-did/keys"
	"github.com/factomatic/factom-did/types"
)

// Entry is the unit of on-chain record produced by every protocol operation:
// a list of extIds (metadata tags that let chain indexers classify the entry
// without parsing it) and a content payload. ExtIDs[0] is always the entry
// type tag and ExtIDs[1] the entry schema version.
type Entry struct {
	ExtIDs  [][]byte
	Content []byte
}

// Size returns the exact on-chain byte size of the entry: a fixed header plus
// two bytes per extId, the extId bytes themselves, and the content bytes.
func (e *Entry) Size() int {
	size := types.EntrySizeFixedOverhead
	for _, extID := range e.ExtIDs {
		size += 2 + len(extID)
	}
	size += len(e.Content)
	return size
}

// checkSize enforces the entry size ceiling, independent of any blockchain
// submission layer.
func (e *Entry) checkSize() error {
	if size := e.Size(); size > types.EntrySizeLimit {
		return &types.ErrEntrySizeExceeded{Size: size, Limit: types.EntrySizeLimit}
	}
	return nil
}

// newSignedEntry builds the signed-entry layout shared by the update, upgrade,
// and deactivation protocols. The signed data is the UTF-8 concatenation,
// without delimiters, of the entry type tag, the entry schema version, the
// full signing key id, and the content; the signer SHA-256 hashes that
// concatenation and signs the digest. Deactivation passes nil content, so its
// signature covers the tag, schema, and key id only.
func newSignedEntry(entryType types.EntryType, signingKeyID string, signer keys.KeyPair, content []byte) (*Entry, error) {
	data := string(entryType) + types.EntrySchemaVersion + signingKeyID + string(content)
	signature, err := signer.Sign([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("did: sign %s entry: %w", entryType, err)
	}

	entry := &Entry{
		ExtIDs: [][]byte{
			[]byte(entryType),
			[]byte(types.EntrySchemaVersion),
			[]byte(signingKeyID),
			signature,
		},
		Content: content,
	}
	if err := entry.checkSize(); err != nil {
		return nil, err
	}
	return entry, nil
}
