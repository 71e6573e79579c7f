// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Factomatic Ltd.

package did

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factomatic/factom-did/types"
)

func TestUpgradeSpecVersion(t *testing.T) {
	d := builtDID(t)
	upgrader, err := NewBuilderFromDID(d).UpgradeSpecVersion("0.3.0")
	require.NoError(t, err)

	entry, err := upgrader.ExportEntryData()
	require.NoError(t, err)

	assert.Equal(t, []byte(`{"didMethodVersion":"0.3.0"}`), entry.Content)
	assert.Equal(t, []byte(d.ID()+"#root"), entry.ExtIDs[2])
	verifySignedEntry(t, entry, types.EntryTypeVersionUpgrade, d.ManagementKeys()[0].KeyPair())
}

func TestUpgradeRejectsNonGreaterVersions(t *testing.T) {
	d := builtDID(t)

	var notGreater *types.ErrVersionNotGreater
	for _, version := range []string{"", "0.2.0", "0.1.9", "0.2"} {
		_, err := NewBuilderFromDID(d).UpgradeSpecVersion(version)
		require.ErrorAs(t, err, &notGreater, "version %q", version)
	}

	// Components compare numerically, not lexically.
	_, err := NewBuilderFromDID(d).UpgradeSpecVersion("0.10.0")
	require.NoError(t, err)
	_, err = NewBuilderFromDID(d).UpgradeSpecVersion("1.0")
	require.NoError(t, err)

	_, err = NewBuilderFromDID(d).UpgradeSpecVersion("0.3.x")
	require.Error(t, err)
}

func TestUpgradeRequiresManagementKeys(t *testing.T) {
	builder, err := NewBuilder()
	require.NoError(t, err)

	var noKeys *types.ErrNoManagementKeys
	_, err = builder.UpgradeSpecVersion("0.3.0")
	require.ErrorAs(t, err, &noKeys)
}

func TestUpgradeSignsWithHighestAuthorityKey(t *testing.T) {
	builder, err := NewBuilder()
	require.NoError(t, err)
	require.NoError(t, builder.AddManagementKey(ManagementKeyOptions{Alias: "secondary", Priority: 2}))
	require.NoError(t, builder.AddManagementKey(ManagementKeyOptions{Alias: "primary", Priority: 0}))
	d, err := builder.Build()
	require.NoError(t, err)

	upgrader, err := NewBuilderFromDID(d).UpgradeSpecVersion("0.3.0")
	require.NoError(t, err)
	entry, err := upgrader.ExportEntryData()
	require.NoError(t, err)

	assert.Equal(t, []byte(d.ID()+"#primary"), entry.ExtIDs[2])
}

func TestDeactivate(t *testing.T) {
	d := builtDID(t)
	deactivator, err := NewBuilderFromDID(d).Deactivate()
	require.NoError(t, err)

	entry, err := deactivator.ExportEntryData()
	require.NoError(t, err)

	// The deactivation entry has empty content; the signature covers the
	// type tag, schema version, and signing key id only.
	assert.Empty(t, entry.Content)
	assert.Equal(t, []byte(d.ID()+"#root"), entry.ExtIDs[2])
	verifySignedEntry(t, entry, types.EntryTypeDeactivation, d.ManagementKeys()[0].KeyPair())
}

func TestDeactivateRequiresPriorityZeroKey(t *testing.T) {
	builder, err := NewBuilder()
	require.NoError(t, err)
	require.NoError(t, builder.AddManagementKey(ManagementKeyOptions{Alias: "k", Priority: 1}))
	d, err := builder.Build()
	require.NoError(t, err)

	var wrongPriority *types.ErrDeactivationPriority
	_, err = NewBuilderFromDID(d).Deactivate()
	require.ErrorAs(t, err, &wrongPriority)
}

func TestDeactivateRequiresManagementKeys(t *testing.T) {
	builder, err := NewBuilder()
	require.NoError(t, err)

	var noKeys *types.ErrNoManagementKeys
	_, err = builder.Deactivate()
	require.ErrorAs(t, err, &noKeys)
}
