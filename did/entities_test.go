// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Factomatic Ltd.

package did

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factomatic/factom-did/types"
)

// testController is a syntactically valid DID identifier for entity tests.
var testController = types.DIDMethodName + ":" + strings.Repeat("ab", 32)

func TestManagementKeyAliasValidation(t *testing.T) {
	valid := []string{"a", "key-1", "0", "my-first-key", strings.Repeat("a", 32)}
	for _, alias := range valid {
		_, err := NewManagementKey(ManagementKeyOptions{Alias: alias, Controller: testController})
		assert.NoError(t, err, "alias %q", alias)
	}

	invalid := []string{"", "Key", "key_1", "key 1", "key.1", strings.Repeat("a", 33)}
	for _, alias := range invalid {
		var target *types.ErrInvalidAlias
		_, err := NewManagementKey(ManagementKeyOptions{Alias: alias, Controller: testController})
		assert.ErrorAs(t, err, &target, "alias %q", alias)
	}
}

func TestManagementKeyValidation(t *testing.T) {
	var controllerErr *types.ErrInvalidController
	_, err := NewManagementKey(ManagementKeyOptions{Alias: "k", Controller: "did:example:123"})
	require.ErrorAs(t, err, &controllerErr)

	var priorityErr *types.ErrInvalidPriority
	_, err = NewManagementKey(ManagementKeyOptions{Alias: "k", Controller: testController, Priority: -1})
	require.ErrorAs(t, err, &priorityErr)

	negative := -2
	var requirementErr *types.ErrInvalidPriorityRequirement
	_, err = NewManagementKey(ManagementKeyOptions{
		Alias: "k", Controller: testController, PriorityRequirement: &negative,
	})
	require.ErrorAs(t, err, &requirementErr)

	var keyTypeErr *types.ErrInvalidKeyType
	_, err = NewManagementKey(ManagementKeyOptions{
		Alias: "k", Controller: testController, KeyType: types.KeyType("DSA"),
	})
	require.ErrorAs(t, err, &keyTypeErr)

	// A controller with a network segment is valid.
	_, err = NewManagementKey(ManagementKeyOptions{
		Alias:      "k",
		Controller: types.DIDMethodName + ":mainnet:" + strings.Repeat("ab", 32),
	})
	require.NoError(t, err)
}

func TestDIDKeyPurposeValidation(t *testing.T) {
	newKey := func(purposes []types.DIDKeyPurpose) error {
		_, err := NewDIDKey(DIDKeyOptions{Alias: "k", Controller: testController, Purposes: purposes})
		return err
	}

	require.NoError(t, newKey([]types.DIDKeyPurpose{types.PurposePublicKey}))
	require.NoError(t, newKey([]types.DIDKeyPurpose{types.PurposePublicKey, types.PurposeAuthentication}))

	var target *types.ErrInvalidPurpose
	assert.ErrorAs(t, newKey(nil), &target)
	assert.ErrorAs(t, newKey([]types.DIDKeyPurpose{
		types.PurposePublicKey, types.PurposeAuthentication, types.PurposePublicKey,
	}), &target)
	assert.ErrorAs(t, newKey([]types.DIDKeyPurpose{
		types.PurposePublicKey, types.PurposePublicKey,
	}), &target)
	assert.ErrorAs(t, newKey([]types.DIDKeyPurpose{types.DIDKeyPurpose("signing")}), &target)
}

func TestServiceValidation(t *testing.T) {
	var typeErr *types.ErrInvalidServiceType
	_, err := NewService(ServiceOptions{Alias: "s", Type: "", Endpoint: "https://example.com"})
	require.ErrorAs(t, err, &typeErr)

	var endpointErr *types.ErrInvalidEndpoint
	for _, endpoint := range []string{"", "example.com", "ftp://example.com", "https://"} {
		_, err := NewService(ServiceOptions{Alias: "s", Type: "email", Endpoint: endpoint})
		assert.ErrorAs(t, err, &endpointErr, "endpoint %q", endpoint)
	}

	for _, endpoint := range []string{
		"https://e.com",
		"http://example.com",
		"https://example.com:8080/path/to/resource",
	} {
		_, err := NewService(ServiceOptions{Alias: "s", Type: "email", Endpoint: endpoint})
		assert.NoError(t, err, "endpoint %q", endpoint)
	}
}

func TestManagementKeyEntryObject(t *testing.T) {
	requirement := 1
	key, err := NewManagementKey(ManagementKeyOptions{
		Alias:               "my-key",
		Priority:            2,
		Controller:          testController,
		PriorityRequirement: &requirement,
	})
	require.NoError(t, err)

	obj, err := key.EntryObject(testController, types.EntrySchemaVersion)
	require.NoError(t, err)

	assert.Equal(t, testController+"#my-key", obj["id"])
	assert.Equal(t, string(types.KeyTypeEd25519), obj["type"])
	assert.Equal(t, testController, obj["controller"])
	assert.Equal(t, 2, obj["priority"])
	assert.Equal(t, 1, obj["priorityRequirement"])
	assert.Equal(t, key.KeyPair().PublicString(), obj["publicKeyBase58"])
}

func TestEntryObjectOmitsUnsetPriorityRequirement(t *testing.T) {
	key, err := NewManagementKey(ManagementKeyOptions{Alias: "k", Controller: testController})
	require.NoError(t, err)

	obj, err := key.EntryObject(testController, types.EntrySchemaVersion)
	require.NoError(t, err)
	_, present := obj["priorityRequirement"]
	assert.False(t, present)
}

func TestEntryObjectUnknownSchemaVersion(t *testing.T) {
	key, err := NewManagementKey(ManagementKeyOptions{Alias: "k", Controller: testController})
	require.NoError(t, err)
	didKey, err := NewDIDKey(DIDKeyOptions{
		Alias: "d", Controller: testController,
		Purposes: []types.DIDKeyPurpose{types.PurposePublicKey},
	})
	require.NoError(t, err)
	service, err := NewService(ServiceOptions{Alias: "s", Type: "email", Endpoint: "https://e.com"})
	require.NoError(t, err)

	var target *types.ErrUnknownSchemaVersion
	_, err = key.EntryObject(testController, "1.0.1")
	assert.ErrorAs(t, err, &target)
	_, err = didKey.EntryObject(testController, "2.0.0")
	assert.ErrorAs(t, err, &target)
	_, err = service.EntryObject(testController, "0.9.0")
	assert.ErrorAs(t, err, &target)
}

func TestDIDKeyEntryObjectPurposes(t *testing.T) {
	key, err := NewDIDKey(DIDKeyOptions{
		Alias:      "auth",
		Controller: testController,
		Purposes:   []types.DIDKeyPurpose{types.PurposeAuthentication},
		KeyType:    types.KeyTypeECDSA,
	})
	require.NoError(t, err)

	obj, err := key.EntryObject(testController, types.EntrySchemaVersion)
	require.NoError(t, err)
	assert.Equal(t, string(types.KeyTypeECDSA), obj["type"])
	assert.Equal(t, []string{"authenticationKey"}, obj["purpose"])
	assert.Equal(t, key.KeyPair().PublicString(), obj["publicKeyBase58"])
}

func TestServiceEntryObjectCustomFields(t *testing.T) {
	service, err := NewService(ServiceOptions{
		Alias:    "inbox",
		Type:     "CredentialStoreService",
		Endpoint: "https://e.com",
		CustomFields: map[string]any{
			"description": "primary inbox",
			// Colliding custom fields must not mask reserved fields.
			"serviceEndpoint": "https://attacker.example.com",
		},
	})
	require.NoError(t, err)

	obj, err := service.EntryObject(testController, types.EntrySchemaVersion)
	require.NoError(t, err)
	assert.Equal(t, testController+"#inbox", obj["id"])
	assert.Equal(t, "CredentialStoreService", obj["type"])
	assert.Equal(t, "https://e.com", obj["serviceEndpoint"])
	assert.Equal(t, "primary inbox", obj["description"])
}

func TestKeyRotationPreservesIdentity(t *testing.T) {
	key, err := NewManagementKey(ManagementKeyOptions{Alias: "k", Priority: 1, Controller: testController})
	require.NoError(t, err)

	before := key.KeyPair().PublicString()
	require.NoError(t, key.Rotate())

	assert.NotEqual(t, before, key.KeyPair().PublicString())
	assert.Equal(t, "k", key.Alias())
	assert.Equal(t, 1, key.Priority())
	assert.Equal(t, types.KeyTypeEd25519, key.KeyPair().KeyType())
	assert.True(t, key.KeyPair().HasPrivate())
}
