// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Factomatic Ltd.

package did

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/factomatic/factom-did/types"
)

// VersionUpgrader produces the entry that bumps a DID's method spec version.
type VersionUpgrader struct {
	builder    *Builder
	newVersion string
}

// UpgradeSpecVersion returns a VersionUpgrader targeting newVersion. It fails
// immediately when newVersion is absent or not strictly greater, by numeric
// dot-separated comparison, than the builder's current version.
func (b *Builder) UpgradeSpecVersion(newVersion string) (*VersionUpgrader, error) {
	if b.spent {
		return nil, &types.ErrBuilderSpent{}
	}
	if len(b.managementKeys) == 0 {
		return nil, &types.ErrNoManagementKeys{}
	}
	if newVersion == "" {
		return nil, &types.ErrVersionNotGreater{Current: b.specVersion, Proposed: newVersion}
	}
	greater, err := versionGreater(newVersion, b.specVersion)
	if err != nil {
		return nil, err
	}
	if !greater {
		return nil, &types.ErrVersionNotGreater{Current: b.specVersion, Proposed: newVersion}
	}
	return &VersionUpgrader{builder: b, newVersion: newVersion}, nil
}

// upgradeDocument is the version upgrade entry content.
type upgradeDocument struct {
	DIDMethodVersion string `json:"didMethodVersion"`
}

// ExportEntryData produces the signed DIDMethodVersionUpgrade entry, signed
// with the numerically lowest-priority management key of the current set.
func (u *VersionUpgrader) ExportEntryData() (*Entry, error) {
	content, err := json.Marshal(upgradeDocument{DIDMethodVersion: u.newVersion})
	if err != nil {
		return nil, fmt.Errorf("did: serialize upgrade document: %w", err)
	}

	signingKey := lowestPriorityKey(u.builder.managementKeys)
	signingKeyID := u.builder.id + "#" + signingKey.Alias()
	return newSignedEntry(types.EntryTypeVersionUpgrade, signingKeyID, signingKey.KeyPair(), content)
}

// versionGreater compares dot-separated numeric versions component-wise,
// padding the shorter version with zeros.
func versionGreater(proposed, current string) (bool, error) {
	a, err := parseVersion(proposed)
	if err != nil {
		return false, err
	}
	b, err := parseVersion(current)
	if err != nil {
		return false, err
	}
	for len(a) < len(b) {
		a = append(a, 0)
	}
	for len(b) < len(a) {
		b = append(b, 0)
	}
	for i := range a {
		if a[i] != b[i] {
			return a[i] > b[i], nil
		}
	}
	return false, nil
}

func parseVersion(version string) ([]int, error) {
	parts := strings.Split(version, ".")
	out := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("did: malformed version %q: %w", version, err)
		}
		out[i] = n
	}
	return out, nil
}
