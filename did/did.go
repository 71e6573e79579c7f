// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Factomatic Ltd.

// Package did implements the factom DID lifecycle: building a DID's key and
// service sets, deriving its chain-anchored identifier, and producing the
// byte-exact signed entries that create, update, upgrade, and deactivate it
// on chain.
//
// The package follows a mutable-builder/frozen-snapshot split: a Builder owns
// growable collections and Build moves them into an immutable DID. A new
// Builder can be rehydrated from a built DID to drive the update, upgrade,
// and deactivation protocols.
//
// Builders and the protocol objects derived from them are single-owner and
// not safe for concurrent use.
package did

import (
	"encoding/json"
	"fmt"

	"github.com/factomatic/factom-did/types"
)

// Builder accumulates the state of a DID under construction. The zero value
// is not usable; construct with NewBuilder, NewBuilderWithID, or
// NewBuilderFromDID.
type Builder struct {
	id          string
	nonce       []byte
	network     types.Network
	specVersion string

	managementKeys []*ManagementKey
	didKeys        []*DIDKey
	services       []*Service

	spent bool
}

// NewBuilder starts a DID with a freshly generated identifier: a 32-byte
// random nonce is drawn and the chain id is derived from it.
func NewBuilder() (*Builder, error) {
	nonce, err := generateNonce()
	if err != nil {
		return nil, err
	}
	return &Builder{
		id:          newDIDID(types.NetworkUnspecified, nonce),
		nonce:       nonce,
		specVersion: types.DIDMethodSpecVersion,
	}, nil
}

// NewBuilderWithID starts a DID with a caller-supplied identifier. An id that
// fails the DID grammar silently falls back to fresh-id generation; this
// leniency is deliberate. A builder seeded with a supplied id has no nonce
// and therefore cannot export a creation entry.
func NewBuilderWithID(id string) (*Builder, error) {
	if !idPattern.MatchString(id) {
		return NewBuilder()
	}
	return &Builder{
		id:          id,
		network:     networkFromID(id),
		specVersion: types.DIDMethodSpecVersion,
	}, nil
}

// NewBuilderFromDID rehydrates a mutable Builder from a built DID so the
// update, upgrade, and deactivation protocols can be driven against it.
func NewBuilderFromDID(d *DID) *Builder {
	return &Builder{
		id:             d.id,
		network:        d.network,
		specVersion:    d.specVersion,
		managementKeys: cloneManagementKeys(d.managementKeys),
		didKeys:        cloneDIDKeys(d.didKeys),
		services:       cloneServices(d.services),
	}
}

// ID returns the DID identifier under construction.
func (b *Builder) ID() string { return b.id }

// SetNetwork selects the Factom network, rewriting the identifier while
// preserving its chain id suffix.
func (b *Builder) SetNetwork(network types.Network) error {
	if b.spent {
		return &types.ErrBuilderSpent{}
	}
	switch network {
	case types.NetworkMainnet, types.NetworkTestnet, types.NetworkUnspecified:
	default:
		return &types.ErrInvalidNetwork{Network: string(network)}
	}
	b.network = network
	b.id = composeID(network, chainIDFromID(b.id))
	return nil
}

// AddManagementKey constructs a management key and appends it. The controller
// defaults to the DID's own identifier and the key type to Ed25519. The key
// is fully validated before any state changes.
func (b *Builder) AddManagementKey(opts ManagementKeyOptions) error {
	if b.spent {
		return &types.ErrBuilderSpent{}
	}
	if opts.Controller == "" {
		opts.Controller = b.id
	}
	key, err := NewManagementKey(opts)
	if err != nil {
		return err
	}
	if b.keyAliasInUse(key.Alias()) {
		return &types.ErrDuplicateAlias{Alias: key.Alias()}
	}
	b.managementKeys = append(b.managementKeys, key)
	return nil
}

// AddDIDKey constructs an application (DID) key and appends it. The
// controller defaults to the DID's own identifier and the key type to
// Ed25519. The key is fully validated before any state changes.
func (b *Builder) AddDIDKey(opts DIDKeyOptions) error {
	if b.spent {
		return &types.ErrBuilderSpent{}
	}
	if opts.Controller == "" {
		opts.Controller = b.id
	}
	key, err := NewDIDKey(opts)
	if err != nil {
		return err
	}
	if b.keyAliasInUse(key.Alias()) {
		return &types.ErrDuplicateAlias{Alias: key.Alias()}
	}
	b.didKeys = append(b.didKeys, key)
	return nil
}

// AddService constructs a service and appends it. The service is fully
// validated before any state changes.
func (b *Builder) AddService(opts ServiceOptions) error {
	if b.spent {
		return &types.ErrBuilderSpent{}
	}
	service, err := NewService(opts)
	if err != nil {
		return err
	}
	for _, existing := range b.services {
		if existing.Alias() == service.Alias() {
			return &types.ErrDuplicateAlias{Alias: service.Alias()}
		}
	}
	b.services = append(b.services, service)
	return nil
}

// keyAliasInUse checks the shared alias namespace spanning management and DID
// keys. Services have their own namespace.
func (b *Builder) keyAliasInUse(alias string) bool {
	for _, key := range b.managementKeys {
		if key.Alias() == alias {
			return true
		}
	}
	for _, key := range b.didKeys {
		if key.Alias() == alias {
			return true
		}
	}
	return false
}

// Build freezes the current state into an immutable DID. The collections are
// moved, not copied: the builder is spent afterwards and every further
// operation on it fails.
func (b *Builder) Build() (*DID, error) {
	if b.spent {
		return nil, &types.ErrBuilderSpent{}
	}
	if !idPattern.MatchString(b.id) {
		return nil, &types.ErrInvalidDIDID{ID: b.id}
	}

	d := &DID{
		id:             b.id,
		nonce:          b.nonce,
		network:        b.network,
		specVersion:    b.specVersion,
		managementKeys: b.managementKeys,
		didKeys:        b.didKeys,
		services:       b.services,
	}
	b.managementKeys, b.didKeys, b.services = nil, nil, nil
	b.spent = true
	return d, nil
}

// DID is a frozen snapshot of a DID's construction state. It is immutable;
// all accessors return defensive copies.
type DID struct {
	id          string
	nonce       []byte
	network     types.Network
	specVersion string

	managementKeys []*ManagementKey
	didKeys        []*DIDKey
	services       []*Service
}

// ID returns the DID identifier.
func (d *DID) ID() string { return d.id }

// Network returns the network the DID is anchored on.
func (d *DID) Network() types.Network { return d.network }

// SpecVersion returns the DID method spec version.
func (d *DID) SpecVersion() string { return d.specVersion }

// Nonce returns the random nonce the identifier was derived from, or nil for
// a DID built from a supplied identifier.
func (d *DID) Nonce() []byte { return append([]byte(nil), d.nonce...) }

// ManagementKeys returns a snapshot of the management keys.
func (d *DID) ManagementKeys() []*ManagementKey { return cloneManagementKeys(d.managementKeys) }

// DIDKeys returns a snapshot of the application keys.
func (d *DID) DIDKeys() []*DIDKey { return cloneDIDKeys(d.didKeys) }

// Services returns a snapshot of the services.
func (d *DID) Services() []*Service { return cloneServices(d.services) }

// didDocument is the creation entry content. Struct field order fixes the
// serialization order.
type didDocument struct {
	DIDMethodVersion string           `json:"didMethodVersion"`
	ManagementKey    []map[string]any `json:"managementKey"`
	DIDKey           []map[string]any `json:"didKey,omitempty"`
	Service          []map[string]any `json:"service,omitempty"`
}

// ExportEntryData produces the creation entry: the DID document as compact
// JSON content, tagged with the creation type, the schema version, and the
// identifier nonce. It requires at least one management key, at least one of
// which has priority 0.
func (d *DID) ExportEntryData() (*Entry, error) {
	if len(d.managementKeys) == 0 {
		return nil, &types.ErrNoManagementKeys{}
	}
	if lowestPriorityKey(d.managementKeys).Priority() != 0 {
		return nil, &types.ErrNoPriorityZeroKey{}
	}
	if len(d.nonce) == 0 {
		return nil, &types.ErrMissingNonce{}
	}

	doc := didDocument{DIDMethodVersion: d.specVersion}
	for _, key := range d.managementKeys {
		obj, err := key.EntryObject(d.id, types.EntrySchemaVersion)
		if err != nil {
			return nil, err
		}
		doc.ManagementKey = append(doc.ManagementKey, obj)
	}
	for _, key := range d.didKeys {
		obj, err := key.EntryObject(d.id, types.EntrySchemaVersion)
		if err != nil {
			return nil, err
		}
		doc.DIDKey = append(doc.DIDKey, obj)
	}
	for _, service := range d.services {
		obj, err := service.EntryObject(d.id, types.EntrySchemaVersion)
		if err != nil {
			return nil, err
		}
		doc.Service = append(doc.Service, obj)
	}

	content, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("did: serialize DID document: %w", err)
	}

	entry := &Entry{
		ExtIDs: [][]byte{
			[]byte(types.EntryTypeCreate),
			[]byte(types.EntrySchemaVersion),
			d.nonce,
		},
		Content: content,
	}
	if err := entry.checkSize(); err != nil {
		return nil, err
	}
	return entry, nil
}

// lowestPriorityKey returns the management key with the numerically smallest
// priority, i.e. the highest authority. Ties keep the earliest key.
func lowestPriorityKey(list []*ManagementKey) *ManagementKey {
	lowest := list[0]
	for _, key := range list[1:] {
		if key.Priority() < lowest.Priority() {
			lowest = key
		}
	}
	return lowest
}
