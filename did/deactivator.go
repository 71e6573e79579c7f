// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Factomatic Ltd.

package did

import (
	"github.com/factomatic/factom-did/types"
)

// Deactivator produces the entry that permanently deactivates a DID.
type Deactivator struct {
	builder    *Builder
	signingKey *ManagementKey
}

// Deactivate returns a Deactivator for the builder's DID. A DID can only be
// deactivated by its highest-authority key, so construction selects the
// numerically lowest-priority management key and fails unless its priority
// is 0.
func (b *Builder) Deactivate() (*Deactivator, error) {
	if b.spent {
		return nil, &types.ErrBuilderSpent{}
	}
	if len(b.managementKeys) == 0 {
		return nil, &types.ErrNoManagementKeys{}
	}
	signingKey := lowestPriorityKey(b.managementKeys)
	if signingKey.Priority() != 0 {
		return nil, &types.ErrDeactivationPriority{Priority: signingKey.Priority()}
	}
	return &Deactivator{builder: b, signingKey: signingKey}, nil
}

// ExportEntryData produces the signed DIDDeactivation entry. The content is
// empty; the signature covers the entry type tag, the schema version, and the
// signing key id.
func (d *Deactivator) ExportEntryData() (*Entry, error) {
	signingKeyID := d.builder.id + "#" + d.signingKey.Alias()
	return newSignedEntry(types.EntryTypeDeactivation, signingKeyID, d.signingKey.KeyPair(), nil)
}
