// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Factomatic Ltd.

package did

import (
	"regexp"

	"github.com/factomatic/factom-did/types"
)

var (
	// aliasPattern constrains aliases for keys and services.
	aliasPattern = regexp.MustCompile(`^[a-z0-9-]{1,32}$`)
	// idPattern is the DID identifier grammar, with an optional network segment.
	idPattern = regexp.MustCompile(`^` + types.DIDMethodName + `:((mainnet|testnet):)?[a-f0-9]{64}$`)
	// endpointPattern accepts HTTP(S) URLs with an optional port and path.
	endpointPattern = regexp.MustCompile(`^https?://[A-Za-z0-9.-]+(:[0-9]+)?(/[A-Za-z0-9._~!$&'()*+,;=:@%/?#-]*)?$`)
)

func validateAlias(alias string) error {
	if !aliasPattern.MatchString(alias) {
		return &types.ErrInvalidAlias{Alias: alias}
	}
	return nil
}

func validateController(controller string) error {
	if !idPattern.MatchString(controller) {
		return &types.ErrInvalidController{Controller: controller}
	}
	return nil
}

func validatePriorityRequirement(requirement *int) error {
	if requirement != nil && *requirement < 0 {
		return &types.ErrInvalidPriorityRequirement{Value: *requirement}
	}
	return nil
}

// copyRequirement clones an optional priority requirement so entity snapshots
// never share the caller's pointer.
func copyRequirement(requirement *int) *int {
	if requirement == nil {
		return nil
	}
	v := *requirement
	return &v
}

func requirementsEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
