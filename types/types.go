// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Factomatic Ltd.

// Package types defines shared value types, protocol constants, and error
// types used across the factom-did module.
package types

// EntryType tags the kind of on-chain entry. It is always the first extId of
// an entry, enabling chain indexers to classify entries without parsing
// their content.
type EntryType string

const (
	// EntryTypeCreate anchors a brand-new DID and its initial document.
	EntryTypeCreate EntryType = "DIDManagement"
	// EntryTypeUpdate carries an add/revoke change-set for an existing DID.
	EntryTypeUpdate EntryType = "DIDUpdate"
	// EntryTypeDeactivation permanently deactivates a DID.
	EntryTypeDeactivation EntryType = "DIDDeactivation"
	// EntryTypeVersionUpgrade bumps the DID's method spec version.
	EntryTypeVersionUpgrade EntryType = "DIDMethodVersionUpgrade"
)

const (
	// EntrySchemaVersion is the entry schema this module produces. It is the
	// second extId of every entry and the only schema version supported.
	EntrySchemaVersion = "1.0.0"
	// DIDMethodName prefixes every identifier produced by this module.
	DIDMethodName = "did:factom"
	// DIDMethodSpecVersion is the method version recorded in creation entries.
	DIDMethodSpecVersion = "0.2.0"
)

const (
	// EntrySizeLimit is the maximum total size of an entry in bytes,
	// independent of any blockchain submission layer.
	EntrySizeLimit = 10275
	// EntrySizeFixedOverhead is the fixed entry header contribution to the
	// total size, before extIds and content are counted.
	EntrySizeFixedOverhead = 35
)

// KeyType identifies the cryptographic algorithm of a key pair. The value is
// the exact string written to the on-chain "type" field.
type KeyType string

const (
	KeyTypeEd25519 KeyType = "Ed25519VerificationKey"
	KeyTypeECDSA   KeyType = "ECDSASecp256k1VerificationKey"
	KeyTypeRSA     KeyType = "RSAVerificationKey"
)

// DIDKeyPurpose scopes what an application (DID) key may be used for.
type DIDKeyPurpose string

const (
	// PurposePublicKey marks a key for general public-key use.
	PurposePublicKey DIDKeyPurpose = "publicKey"
	// PurposeAuthentication marks a key for authentication.
	PurposeAuthentication DIDKeyPurpose = "authenticationKey"
)

// Network selects which Factom network a DID is anchored on. The network, when
// set, appears as an extra segment in the DID identifier.
type Network string

const (
	NetworkMainnet     Network = "mainnet"
	NetworkTestnet     Network = "testnet"
	NetworkUnspecified Network = ""
)
