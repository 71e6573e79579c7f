// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Factomatic Ltd.

package types

import "fmt"

// ErrInvalidAlias is returned when an alias does not match ^[a-z0-9-]{1,32}$.
type ErrInvalidAlias struct {
	Alias string
}

func (e *ErrInvalidAlias) Error() string {
	return fmt.Sprintf("alias %q must match ^[a-z0-9-]{1,32}$", e.Alias)
}

// ErrInvalidController is returned when a key controller is not a valid DID identifier.
type ErrInvalidController struct {
	Controller string
}

func (e *ErrInvalidController) Error() string {
	return fmt.Sprintf("controller %q is not a valid DID identifier", e.Controller)
}

// ErrInvalidDIDID is returned when a DID identifier does not match the DID grammar.
type ErrInvalidDIDID struct {
	ID string
}

func (e *ErrInvalidDIDID) Error() string {
	return fmt.Sprintf("DID identifier %q does not match the DID grammar", e.ID)
}

// ErrInvalidEndpoint is returned when a service endpoint is not an HTTP(S) URL.
type ErrInvalidEndpoint struct {
	Endpoint string
}

func (e *ErrInvalidEndpoint) Error() string {
	return fmt.Sprintf("service endpoint %q is not a valid HTTP(S) URL", e.Endpoint)
}

// ErrInvalidServiceType is returned when a service type is empty.
type ErrInvalidServiceType struct{}

func (e *ErrInvalidServiceType) Error() string {
	return "service type must not be empty"
}

// ErrInvalidPriority is returned when a management key priority is negative.
type ErrInvalidPriority struct {
	Value int
}

func (e *ErrInvalidPriority) Error() string {
	return fmt.Sprintf("priority must be a non-negative integer, got %d", e.Value)
}

// ErrInvalidPriorityRequirement is returned when a priority requirement is negative.
type ErrInvalidPriorityRequirement struct {
	Value int
}

func (e *ErrInvalidPriorityRequirement) Error() string {
	return fmt.Sprintf("priority requirement must be a non-negative integer, got %d", e.Value)
}

// ErrInvalidKeyType is returned when a key type is not one of the supported algorithms.
type ErrInvalidKeyType struct {
	KeyType string
}

func (e *ErrInvalidKeyType) Error() string {
	return fmt.Sprintf("unsupported key type %q", e.KeyType)
}

// ErrInvalidPurpose is returned when a DID key purpose set is malformed.
type ErrInvalidPurpose struct {
	Reason string
}

func (e *ErrInvalidPurpose) Error() string {
	return fmt.Sprintf("invalid DID key purpose: %s", e.Reason)
}

// ErrInvalidNetwork is returned when a network is neither mainnet nor testnet.
type ErrInvalidNetwork struct {
	Network string
}

func (e *ErrInvalidNetwork) Error() string {
	return fmt.Sprintf("network must be %q or %q, got %q", NetworkMainnet, NetworkTestnet, e.Network)
}

// ErrDuplicateAlias is returned when an alias is already taken within its namespace.
type ErrDuplicateAlias struct {
	Alias string
}

func (e *ErrDuplicateAlias) Error() string {
	return fmt.Sprintf("duplicate alias %q", e.Alias)
}

// ErrNoManagementKeys is returned when an operation requires at least one
// management key and none is present.
type ErrNoManagementKeys struct{}

func (e *ErrNoManagementKeys) Error() string {
	return "the DID must have at least one management key"
}

// ErrNoPriorityZeroKey is returned when an operation would leave the DID
// without a management key of priority 0.
type ErrNoPriorityZeroKey struct{}

func (e *ErrNoPriorityZeroKey) Error() string {
	return "the DID must have at least one management key with priority 0"
}

// ErrMissingNonce is returned when a creation entry is exported from a DID
// whose identifier was supplied rather than freshly generated, so no nonce
// exists to carry in the entry.
type ErrMissingNonce struct{}

func (e *ErrMissingNonce) Error() string {
	return "creation entry requires a freshly generated identifier with a nonce"
}

// ErrEmptyUpdate is returned when an update entry would contain no changes.
type ErrEmptyUpdate struct{}

func (e *ErrEmptyUpdate) Error() string {
	return "update entry would contain no changes"
}

// ErrVersionNotGreater is returned when an upgrade target version is absent or
// not strictly greater than the current method spec version.
type ErrVersionNotGreater struct {
	Current  string
	Proposed string
}

func (e *ErrVersionNotGreater) Error() string {
	return fmt.Sprintf("proposed version %q must be strictly greater than the current version %q", e.Proposed, e.Current)
}

// ErrUnknownSchemaVersion is returned when an entry object is requested for a
// schema version this module does not implement.
type ErrUnknownSchemaVersion struct {
	Version string
}

func (e *ErrUnknownSchemaVersion) Error() string {
	return fmt.Sprintf("unknown schema version %q", e.Version)
}

// ErrEntrySizeExceeded is returned when an entry exceeds the on-chain size ceiling.
type ErrEntrySizeExceeded struct {
	Size  int
	Limit int
}

func (e *ErrEntrySizeExceeded) Error() string {
	return fmt.Sprintf("entry size %d exceeds the %d byte limit", e.Size, e.Limit)
}

// ErrKeyPairMismatch is returned when a supplied public key is not derivable
// from the supplied private key.
type ErrKeyPairMismatch struct{}

func (e *ErrKeyPairMismatch) Error() string {
	return "public key is not derivable from the supplied private key"
}

// ErrMalformedPublicKey is returned when public key bytes cannot be decoded
// for the declared algorithm.
type ErrMalformedPublicKey struct {
	Reason string
}

func (e *ErrMalformedPublicKey) Error() string {
	return fmt.Sprintf("malformed public key: %s", e.Reason)
}

// ErrMalformedPrivateKey is returned when private key bytes cannot be decoded
// for the declared algorithm.
type ErrMalformedPrivateKey struct {
	Reason string
}

func (e *ErrMalformedPrivateKey) Error() string {
	return fmt.Sprintf("malformed private key: %s", e.Reason)
}

// ErrMalformedSignature is returned when a signature is structurally invalid
// for the algorithm, as opposed to well-formed but wrong.
type ErrMalformedSignature struct {
	Reason string
}

func (e *ErrMalformedSignature) Error() string {
	return fmt.Sprintf("malformed signature: %s", e.Reason)
}

// ErrMissingPrivateKey is returned when signing or private-key export is
// attempted on a public-only key.
type ErrMissingPrivateKey struct {
	KeyType string
}

func (e *ErrMissingPrivateKey) Error() string {
	return fmt.Sprintf("%s key has no private key material", e.KeyType)
}

// ErrDeactivationPriority is returned when deactivation is attempted while the
// highest-authority management key does not have priority 0.
type ErrDeactivationPriority struct {
	Priority int
}

func (e *ErrDeactivationPriority) Error() string {
	return fmt.Sprintf("deactivation requires a priority 0 management key, lowest priority is %d", e.Priority)
}

// ErrBuilderSpent is returned when a Builder is used after Build has frozen it.
type ErrBuilderSpent struct{}

func (e *ErrBuilderSpent) Error() string {
	return "builder has already been built and can no longer be used"
}
