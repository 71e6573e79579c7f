// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Factomatic Ltd.

package did

import (
	"fmt"

	"github.com/factomatic/factom-did/keys"
	"github.com/factomatic/factom-did/types"
)

// DIDKey is an application key scoped to one or both of two purposes: general
// public-key use and authentication. Unlike management keys it carries no
// priority and cannot sign protocol entries.
//
// A DIDKey is immutable after construction except through Rotate.
type DIDKey struct {
	alias               string
	purposes            []types.DIDKeyPurpose
	controller          string
	priorityRequirement *int
	keyPair             keys.KeyPair
}

// DIDKeyOptions carries parameters for constructing a DIDKey.
type DIDKeyOptions struct {
	// Alias is the key's name, unique across the DID's management and DID
	// keys, matching ^[a-z0-9-]{1,32}$. Required.
	Alias string
	// Purposes is a set of one or two distinct purposes. Required.
	Purposes []types.DIDKeyPurpose
	// KeyType selects the algorithm. Defaults to Ed25519.
	KeyType types.KeyType
	// Controller is the DID identifier controlling this key. The Builder
	// defaults it to the owning DID's identifier.
	Controller string
	// PriorityRequirement, when set, is the minimum privilege (lowest
	// priority number) a management key must hold to revoke this key.
	PriorityRequirement *int
}

// NewDIDKey validates opts, generates a fresh key pair of the selected
// algorithm, and returns the DIDKey.
func NewDIDKey(opts DIDKeyOptions) (*DIDKey, error) {
	if err := validateAlias(opts.Alias); err != nil {
		return nil, err
	}
	if err := validatePurposes(opts.Purposes); err != nil {
		return nil, err
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

	return &DIDKey{
		alias:               opts.Alias,
		purposes:            append([]types.DIDKeyPurpose(nil), opts.Purposes...),
		controller:          opts.Controller,
		priorityRequirement: copyRequirement(opts.PriorityRequirement),
		keyPair:             keyPair,
	}, nil
}

func validatePurposes(purposes []types.DIDKeyPurpose) error {
	if len(purposes) == 0 || len(purposes) > 2 {
		return &types.ErrInvalidPurpose{Reason: fmt.Sprintf("expected 1 or 2 purposes, got %d", len(purposes))}
	}
	seen := make(map[types.DIDKeyPurpose]bool, len(purposes))
	for _, p := range purposes {
		if p != types.PurposePublicKey && p != types.PurposeAuthentication {
			return &types.ErrInvalidPurpose{Reason: fmt.Sprintf("unsupported purpose %q", p)}
		}
		if seen[p] {
			return &types.ErrInvalidPurpose{Reason: fmt.Sprintf("duplicate purpose %q", p)}
		}
		seen[p] = true
	}
	return nil
}

// Alias returns the key's alias.
func (d *DIDKey) Alias() string { return d.alias }

// Purposes returns the key's purpose set.
func (d *DIDKey) Purposes() []types.DIDKeyPurpose {
	return append([]types.DIDKeyPurpose(nil), d.purposes...)
}

// HasPurpose reports whether the key carries the given purpose.
func (d *DIDKey) HasPurpose(purpose types.DIDKeyPurpose) bool {
	for _, p := range d.purposes {
		if p == purpose {
			return true
		}
	}
	return false
}

// Controller returns the controlling DID identifier.
func (d *DIDKey) Controller() string { return d.controller }

// PriorityRequirement returns the minimum privilege needed to revoke this key,
// or nil when unset.
func (d *DIDKey) PriorityRequirement() *int { return copyRequirement(d.priorityRequirement) }

// KeyPair returns the underlying key pair.
func (d *DIDKey) KeyPair() keys.KeyPair { return d.keyPair }

// Rotate replaces the underlying key pair with a freshly generated one of the
// same algorithm, keeping alias, controller, purposes, and priority
// requirement. It requires the private key to be present.
func (d *DIDKey) Rotate() error {
	if !d.keyPair.HasPrivate() {
		return &types.ErrMissingPrivateKey{KeyType: string(d.keyPair.KeyType())}
	}
	keyPair, err := keys.Generate(d.keyPair.KeyType())
	if err != nil {
		return err
	}
	d.keyPair = keyPair
	return nil
}

// EntryObject produces the canonical on-chain representation of the key.
// Only schema version 1.0.0 is supported.
func (d *DIDKey) EntryObject(didID, schemaVersion string) (map[string]any, error) {
	if schemaVersion != types.EntrySchemaVersion {
		return nil, &types.ErrUnknownSchemaVersion{Version: schemaVersion}
	}
	purposes := make([]string, len(d.purposes))
	for i, p := range d.purposes {
		purposes[i] = string(p)
	}
	obj := map[string]any{
		"id":                   didID + "#" + d.alias,
		"type":                 string(d.keyPair.KeyType()),
		"controller":           d.controller,
		"purpose":              purposes,
		d.keyPair.OnChainField(): d.keyPair.PublicString(),
	}
	if d.priorityRequirement != nil {
		obj["priorityRequirement"] = *d.priorityRequirement
	}
	return obj, nil
}

// equal is the value equality used by the update diff. It covers all fields
// including key material and is independent of serialization.
func (d *DIDKey) equal(other *DIDKey) bool {
	if d.alias != other.alias ||
		d.controller != other.controller ||
		!requirementsEqual(d.priorityRequirement, other.priorityRequirement) ||
		!d.keyPair.Equal(other.keyPair) ||
		len(d.purposes) != len(other.purposes) {
		return false
	}
	for i, p := range d.purposes {
		if other.purposes[i] != p {
			return false
		}
	}
	return true
}

// clone snapshots the key. See ManagementKey.clone for the key pair sharing
// rationale.
func (d *DIDKey) clone() *DIDKey {
	c := *d
	c.purposes = append([]types.DIDKeyPurpose(nil), d.purposes...)
	c.priorityRequirement = copyRequirement(d.priorityRequirement)
	return &c
}

// withPurposes clones the key with a different purpose set, sharing the same
// key material. The update protocol uses this to retain the complementary
// purpose when a single purpose is revoked from a two-purpose key.
func (d *DIDKey) withPurposes(purposes []types.DIDKeyPurpose) *DIDKey {
	c := d.clone()
	c.purposes = append([]types.DIDKeyPurpose(nil), purposes...)
	return c
}

func cloneDIDKeys(list []*DIDKey) []*DIDKey {
	out := make([]*DIDKey, len(list))
	for i, k := range list {
		out[i] = k.clone()
	}
	return out
}
