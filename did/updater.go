// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Factomatic Ltd.

package did

import (
	"encoding/json"
	"fmt"

	"github.com/factomatic/factom-did/types"
)

// Updater constructs a DIDUpdate entry by diffing a rehydrated builder's
// collections against a snapshot taken when the Updater was created. Adds and
// revocations are expressed as a minimal change-set; the entry is signed with
// the highest-authority management key of the original snapshot.
//
// An Updater is a one-shot object: a successful ExportEntryData materializes
// pending purpose revocations into the builder, so a fresh Updater should be
// created for any subsequent update. A failed export leaves the builder and
// the pending revocations untouched, so the caller can fix the violation and
// export again.
type Updater struct {
	builder *Builder

	originalManagementKeys []*ManagementKey
	originalDIDKeys        []*DIDKey
	originalServices       []*Service

	// pendingPurposeRevocations buffers purpose-level revocations by DID key
	// alias. They are applied lazily by DIDKeys and materialized on a
	// successful export.
	pendingPurposeRevocations map[string][]types.DIDKeyPurpose

	// requiredSigningPriority is computed at export from the change-set. Its
	// enforcement is deliberately inert; see RequiredSigningPriority.
	requiredSigningPriority *int
}

// Update snapshots the builder's current collections and returns an Updater
// bound to it. The builder must hold at least one management key.
func (b *Builder) Update() (*Updater, error) {
	if b.spent {
		return nil, &types.ErrBuilderSpent{}
	}
	if len(b.managementKeys) == 0 {
		return nil, &types.ErrNoManagementKeys{}
	}
	return &Updater{
		builder:                   b,
		originalManagementKeys:    cloneManagementKeys(b.managementKeys),
		originalDIDKeys:           cloneDIDKeys(b.didKeys),
		originalServices:          cloneServices(b.services),
		pendingPurposeRevocations: make(map[string][]types.DIDKeyPurpose),
	}, nil
}

// AddManagementKey delegates to the underlying builder.
func (u *Updater) AddManagementKey(opts ManagementKeyOptions) error {
	return u.builder.AddManagementKey(opts)
}

// AddDIDKey delegates to the underlying builder.
func (u *Updater) AddDIDKey(opts DIDKeyOptions) error {
	return u.builder.AddDIDKey(opts)
}

// AddService delegates to the underlying builder.
func (u *Updater) AddService(opts ServiceOptions) error {
	return u.builder.AddService(opts)
}

// RevokeManagementKey removes the management key with the given alias and
// reports whether one was found.
func (u *Updater) RevokeManagementKey(alias string) bool {
	for i, key := range u.builder.managementKeys {
		if key.Alias() == alias {
			u.builder.managementKeys = append(u.builder.managementKeys[:i], u.builder.managementKeys[i+1:]...)
			return true
		}
	}
	return false
}

// RevokeDIDKey removes the DID key with the given alias, discarding any
// pending purpose revocations for it, and reports whether one was found.
func (u *Updater) RevokeDIDKey(alias string) bool {
	for i, key := range u.builder.didKeys {
		if key.Alias() == alias {
			u.builder.didKeys = append(u.builder.didKeys[:i], u.builder.didKeys[i+1:]...)
			delete(u.pendingPurposeRevocations, alias)
			return true
		}
	}
	return false
}

// RevokeService removes the service with the given alias and reports whether
// one was found.
func (u *Updater) RevokeService(alias string) bool {
	for i, service := range u.builder.services {
		if service.Alias() == alias {
			u.builder.services = append(u.builder.services[:i], u.builder.services[i+1:]...)
			return true
		}
	}
	return false
}

// RevokeDIDKeyPurpose revokes a single purpose from the DID key with the
// given alias. Revoking one of two purposes retains a key with the
// complementary purpose under the same alias and key material; revoking the
// only remaining purpose is equivalent to revoking the key. The revocation is
// buffered and only materialized at export; until then DIDKeys reflects it as
// a derived view. It reports whether anything was recorded.
func (u *Updater) RevokeDIDKeyPurpose(alias string, purpose types.DIDKeyPurpose) (bool, error) {
	if purpose != types.PurposePublicKey && purpose != types.PurposeAuthentication {
		return false, &types.ErrInvalidPurpose{Reason: fmt.Sprintf("unsupported purpose %q", purpose)}
	}

	var key *DIDKey
	for _, k := range u.builder.didKeys {
		if k.Alias() == alias {
			key = k
			break
		}
	}
	if key == nil {
		return false, nil
	}

	remaining := remainingPurposes(key.Purposes(), u.pendingPurposeRevocations[alias])
	if !containsPurpose(remaining, purpose) {
		return false, nil
	}
	if len(remaining) == 1 {
		// Last purpose: the whole key goes.
		return u.RevokeDIDKey(alias), nil
	}
	u.pendingPurposeRevocations[alias] = append(u.pendingPurposeRevocations[alias], purpose)
	return true, nil
}

// RotateManagementKey replaces the key material of the management key with
// the given alias. The key's private key must be present.
func (u *Updater) RotateManagementKey(alias string) error {
	for _, key := range u.builder.managementKeys {
		if key.Alias() == alias {
			return key.Rotate()
		}
	}
	return fmt.Errorf("did: no management key with alias %q", alias)
}

// RotateDIDKey replaces the key material of the DID key with the given alias.
// The key's private key must be present.
func (u *Updater) RotateDIDKey(alias string) error {
	for _, key := range u.builder.didKeys {
		if key.Alias() == alias {
			return key.Rotate()
		}
	}
	return fmt.Errorf("did: no DID key with alias %q", alias)
}

// ManagementKeys returns a snapshot of the builder's current management keys.
func (u *Updater) ManagementKeys() []*ManagementKey {
	return cloneManagementKeys(u.builder.managementKeys)
}

// DIDKeys returns a snapshot of the builder's current DID keys with all
// pending purpose revocations applied. The overlay is computed on every read.
func (u *Updater) DIDKeys() []*DIDKey {
	out := make([]*DIDKey, 0, len(u.builder.didKeys))
	for _, key := range u.builder.didKeys {
		revoked := u.pendingPurposeRevocations[key.Alias()]
		if len(revoked) == 0 {
			out = append(out, key.clone())
			continue
		}
		out = append(out, key.withPurposes(remainingPurposes(key.Purposes(), revoked)))
	}
	return out
}

// Services returns a snapshot of the builder's current services.
func (u *Updater) Services() []*Service {
	return cloneServices(u.builder.services)
}

// RequiredSigningPriority returns the minimum priority (highest authority)
// implicated by the change-set computed during the last export, or nil when
// no constraint applies. The value is computed for observability only; the
// export does not reject a signing key of lower authority.
func (u *Updater) RequiredSigningPriority() *int {
	return copyRequirement(u.requiredSigningPriority)
}

// updateSection groups entry objects by collection within add or revoke.
type updateSection struct {
	ManagementKey []map[string]any `json:"managementKey,omitempty"`
	DIDKey        []map[string]any `json:"didKey,omitempty"`
	Service       []map[string]any `json:"service,omitempty"`
}

func (s *updateSection) empty() bool {
	return len(s.ManagementKey) == 0 && len(s.DIDKey) == 0 && len(s.Service) == 0
}

// updateDocument is the update entry content.
type updateDocument struct {
	Add    *updateSection `json:"add,omitempty"`
	Revoke *updateSection `json:"revoke,omitempty"`
}

// ExportEntryData diffs the current collections against the original snapshot
// and produces the signed DIDUpdate entry. Pending purpose revocations enter
// the diff as a derived view of the DID keys; they are folded into the builder
// only once the entry is fully constructed, so a failed export (no priority 0
// key, empty change-set, oversized entry) leaves all state intact for a
// fix-and-retry. The entry is signed with the numerically lowest-priority
// management key of the original snapshot.
func (u *Updater) ExportEntryData() (*Entry, error) {
	if len(u.builder.managementKeys) == 0 || lowestPriorityKey(u.builder.managementKeys).Priority() != 0 {
		return nil, &types.ErrNoPriorityZeroKey{}
	}

	didID := u.builder.id
	currentDIDKeys := u.DIDKeys()
	add := &updateSection{}
	revoke := &updateSection{}

	// Management keys. A rotated key (same alias, new material) is emitted
	// only under add: alias-based revoke entries carry no key material, so
	// listing the old material separately would revoke the alias itself.
	for _, key := range u.builder.managementKeys {
		if !containsManagementKey(u.originalManagementKeys, key) {
			obj, err := key.EntryObject(didID, types.EntrySchemaVersion)
			if err != nil {
				return nil, err
			}
			add.ManagementKey = append(add.ManagementKey, obj)
		}
	}
	for _, key := range u.originalManagementKeys {
		if containsManagementKey(u.builder.managementKeys, key) {
			continue
		}
		if managementKeyAliasPresent(u.builder.managementKeys, key.Alias()) {
			continue // rotation
		}
		revoke.ManagementKey = append(revoke.ManagementKey, map[string]any{"id": didID + "#" + key.Alias()})
	}

	// DID keys. Purpose revocations carry the revoked purposes alongside the
	// id; the retained complementary key shows up under add like any other
	// value change.
	for _, key := range currentDIDKeys {
		if !containsDIDKey(u.originalDIDKeys, key) {
			obj, err := key.EntryObject(didID, types.EntrySchemaVersion)
			if err != nil {
				return nil, err
			}
			add.DIDKey = append(add.DIDKey, obj)
		}
	}
	for _, key := range u.originalDIDKeys {
		if containsDIDKey(currentDIDKeys, key) {
			continue
		}
		if didKeyAliasPresent(currentDIDKeys, key.Alias()) {
			if revoked := u.pendingPurposeRevocations[key.Alias()]; len(revoked) > 0 {
				purposes := make([]string, len(revoked))
				for i, p := range revoked {
					purposes[i] = string(p)
				}
				revoke.DIDKey = append(revoke.DIDKey, map[string]any{
					"id":      didID + "#" + key.Alias(),
					"purpose": purposes,
				})
			}
			continue // rotation
		}
		revoke.DIDKey = append(revoke.DIDKey, map[string]any{"id": didID + "#" + key.Alias()})
	}

	// Services.
	for _, service := range u.builder.services {
		if !containsService(u.originalServices, service) {
			obj, err := service.EntryObject(didID, types.EntrySchemaVersion)
			if err != nil {
				return nil, err
			}
			add.Service = append(add.Service, obj)
		}
	}
	for _, service := range u.originalServices {
		if !containsService(u.builder.services, service) {
			revoke.Service = append(revoke.Service, map[string]any{"id": didID + "#" + service.Alias()})
		}
	}

	if add.empty() && revoke.empty() {
		return nil, &types.ErrEmptyUpdate{}
	}

	doc := updateDocument{}
	if !add.empty() {
		doc.Add = add
	}
	if !revoke.empty() {
		doc.Revoke = revoke
	}
	content, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("did: serialize update document: %w", err)
	}

	signingKey := lowestPriorityKey(u.originalManagementKeys)
	signingKeyID := didID + "#" + signingKey.Alias()
	entry, err := newSignedEntry(types.EntryTypeUpdate, signingKeyID, signingKey.KeyPair(), content)
	if err != nil {
		return nil, err
	}

	u.requiredSigningPriority = u.computeRequiredSigningPriority(currentDIDKeys)
	u.materializePurposeRevocations()
	return entry, nil
}

// materializePurposeRevocations folds the pending overlay into the builder's
// DID key collection, replacing each affected key with its complementary
// purpose key.
func (u *Updater) materializePurposeRevocations() {
	if len(u.pendingPurposeRevocations) == 0 {
		return
	}
	for i, key := range u.builder.didKeys {
		revoked := u.pendingPurposeRevocations[key.Alias()]
		if len(revoked) == 0 {
			continue
		}
		u.builder.didKeys[i] = key.withPurposes(remainingPurposes(key.Purposes(), revoked))
	}
	u.pendingPurposeRevocations = make(map[string][]types.DIDKeyPurpose)
}

// computeRequiredSigningPriority derives the minimum priority implicated by
// the change-set: the priority requirement (or own priority) of every revoked
// management key, the priority requirement of every revoked or purpose-revoked
// DID key and of every revoked service, and the priority of every added
// management key. currentDIDKeys is the derived view the diff was computed
// over.
func (u *Updater) computeRequiredSigningPriority(currentDIDKeys []*DIDKey) *int {
	var required *int
	lower := func(v int) {
		if required == nil || v < *required {
			value := v
			required = &value
		}
	}

	for _, key := range u.originalManagementKeys {
		if containsManagementKey(u.builder.managementKeys, key) {
			continue
		}
		if req := key.PriorityRequirement(); req != nil {
			lower(*req)
		} else {
			lower(key.Priority())
		}
	}
	for _, key := range u.originalDIDKeys {
		if containsDIDKey(currentDIDKeys, key) {
			continue
		}
		if req := key.PriorityRequirement(); req != nil {
			lower(*req)
		}
	}
	for _, service := range u.originalServices {
		if containsService(u.builder.services, service) {
			continue
		}
		if req := service.PriorityRequirement(); req != nil {
			lower(*req)
		}
	}
	for _, key := range u.builder.managementKeys {
		if !containsManagementKey(u.originalManagementKeys, key) {
			lower(key.Priority())
		}
	}
	return required
}

func remainingPurposes(purposes, revoked []types.DIDKeyPurpose) []types.DIDKeyPurpose {
	out := make([]types.DIDKeyPurpose, 0, len(purposes))
	for _, p := range purposes {
		if !containsPurpose(revoked, p) {
			out = append(out, p)
		}
	}
	return out
}

func containsPurpose(purposes []types.DIDKeyPurpose, purpose types.DIDKeyPurpose) bool {
	for _, p := range purposes {
		if p == purpose {
			return true
		}
	}
	return false
}

func containsManagementKey(list []*ManagementKey, key *ManagementKey) bool {
	for _, k := range list {
		if k.equal(key) {
			return true
		}
	}
	return false
}

func containsDIDKey(list []*DIDKey, key *DIDKey) bool {
	for _, k := range list {
		if k.equal(key) {
			return true
		}
	}
	return false
}

func containsService(list []*Service, service *Service) bool {
	for _, s := range list {
		if s.equal(service) {
			return true
		}
	}
	return false
}

func managementKeyAliasPresent(list []*ManagementKey, alias string) bool {
	for _, k := range list {
		if k.Alias() == alias {
			return true
		}
	}
	return false
}

func didKeyAliasPresent(list []*DIDKey, alias string) bool {
	for _, k := range list {
		if k.Alias() == alias {
			return true
		}
	}
	return false
}
