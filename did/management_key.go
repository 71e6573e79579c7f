// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Factomatic Ltd.

package did

import (
	"github.com/factomatic/factom-did/keys"
	"github.com/factomatic/factom-did/types"
)

// ManagementKey is a privileged key authorized to sign update, upgrade, and
// deactivation entries for a DID. Priority 0 is the highest privilege; a DID
// is valid only while at least one priority 0 management key exists.
//
// A ManagementKey is immutable after construction except through Rotate.
type ManagementKey struct {
	alias               string
	priority            int
	controller          string
	priorityRequirement *int
	keyPair             keys.KeyPair
}

// ManagementKeyOptions carries parameters for constructing a ManagementKey.
type ManagementKeyOptions struct {
	// Alias is the key's name, unique across the DID's management and DID
	// keys, matching ^[a-z0-9-]{1,32}$. Required.
	Alias string
	// Priority is the key's privilege level; 0 is the highest. Required
	// (the zero value is priority 0).
	Priority int
	// KeyType selects the algorithm. Defaults to Ed25519.
	KeyType types.KeyType
	// Controller is the DID identifier controlling this key. The Builder
	// defaults it to the owning DID's identifier.
	Controller string
	// PriorityRequirement, when set, is the minimum privilege (lowest
	// priority number) a management key must hold to revoke this key.
	PriorityRequirement *int
}

// NewManagementKey validates opts, generates a fresh key pair of the selected
// algorithm, and returns the ManagementKey.
func NewManagementKey(opts ManagementKeyOptions) (*ManagementKey, error) {
	if err := validateAlias(opts.Alias); err != nil {
		return nil, err
	}
	if opts.Priority < 0 {
		return nil, &types.ErrInvalidPriority{Value: opts.Priority}
	}
	if err := validateController(opts.Controller); err != nil {
		return nil, err
	}
	if err := validatePriorityRequirement(opts.PriorityRequirement); err != nil {
		return nil, err
	}

	keyType := opts.KeyType
	if keyType == "" {
		keyType = types.KeyTypeEd25519
	}
	keyPair, err := keys.Generate(keyType)
	if err != nil {
		return nil, err
	}

	return &ManagementKey{
		alias:               opts.Alias,
		priority:            opts.Priority,
		controller:          opts.Controller,
		priorityRequirement: copyRequirement(opts.PriorityRequirement),
		keyPair:             keyPair,
	}, nil
}

// Alias returns the key's alias.
func (m *ManagementKey) Alias() string { return m.alias }

// Priority returns the key's privilege level; 0 is the highest.
func (m *ManagementKey) Priority() int { return m.priority }

// Controller returns the controlling DID identifier.
func (m *ManagementKey) Controller() string { return m.controller }

// PriorityRequirement returns the minimum privilege needed to revoke this key,
// or nil when unset.
func (m *ManagementKey) PriorityRequirement() *int { return copyRequirement(m.priorityRequirement) }

// KeyPair returns the underlying key pair.
func (m *ManagementKey) KeyPair() keys.KeyPair { return m.keyPair }

// Rotate replaces the underlying key pair with a freshly generated one of the
// same algorithm, keeping alias, controller, priority, and priority
// requirement. It requires the private key to be present.
func (m *ManagementKey) Rotate() error {
	if !m.keyPair.HasPrivate() {
		return &types.ErrMissingPrivateKey{KeyType: string(m.keyPair.KeyType())}
	}
	keyPair, err := keys.Generate(m.keyPair.KeyType())
	if err != nil {
		return err
	}
	m.keyPair = keyPair
	return nil
}

// EntryObject produces the canonical on-chain representation of the key.
// Only schema version 1.0.0 is supported.
func (m *ManagementKey) EntryObject(didID, schemaVersion string) (map[string]any, error) {
	if schemaVersion != types.EntrySchemaVersion {
		return nil, &types.ErrUnknownSchemaVersion{Version: schemaVersion}
	}
	obj := map[string]any{
		"id":                   didID + "#" + m.alias,
		"type":                 string(m.keyPair.KeyType()),
		"controller":           m.controller,
		"priority":             m.priority,
		m.keyPair.OnChainField(): m.keyPair.PublicString(),
	}
	if m.priorityRequirement != nil {
		obj["priorityRequirement"] = *m.priorityRequirement
	}
	return obj, nil
}

// equal is the value equality used by the update diff. It covers all fields
// including key material and is independent of serialization.
func (m *ManagementKey) equal(other *ManagementKey) bool {
	return m.alias == other.alias &&
		m.priority == other.priority &&
		m.controller == other.controller &&
		requirementsEqual(m.priorityRequirement, other.priorityRequirement) &&
		m.keyPair.Equal(other.keyPair)
}

// clone snapshots the key. The key pair is shared; Rotate swaps the pair
// pointer rather than mutating it, so snapshots keep the old material.
func (m *ManagementKey) clone() *ManagementKey {
	c := *m
	c.priorityRequirement = copyRequirement(m.priorityRequirement)
	return &c
}

func cloneManagementKeys(list []*ManagementKey) []*ManagementKey {
	out := make([]*ManagementKey, len(list))
	for i, k := range list {
		out[i] = k.clone()
	}
	return out
}
