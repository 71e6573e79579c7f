// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Factomatic Ltd.

package did

import (
	"reflect"

	"github.com/factomatic/factom-did/types"
)

// Service describes an external service associated with a DID, such as a
// credential store or messaging endpoint. A Service is immutable after
// construction.
type Service struct {
	alias               string
	serviceType         string
	endpoint            string
	priorityRequirement *int
	customFields        map[string]any
}

// ServiceOptions carries parameters for constructing a Service.
type ServiceOptions struct {
	// Alias is the service's name, unique across the DID's services,
	// matching ^[a-z0-9-]{1,32}$. Required.
	Alias string
	// Type is a non-empty service type string. Required.
	Type string
	// Endpoint is an HTTP(S) URL. Required.
	Endpoint string
	// PriorityRequirement, when set, is the minimum privilege (lowest
	// priority number) a management key must hold to revoke this service.
	PriorityRequirement *int
	// CustomFields are merged flatly into the on-chain service object.
	// Reserved fields (id, type, serviceEndpoint, priorityRequirement)
	// always win on collision.
	CustomFields map[string]any
}

// NewService validates opts and returns the Service.
func NewService(opts ServiceOptions) (*Service, error) {
	if err := validateAlias(opts.Alias); err != nil {
		return nil, err
	}
	if opts.Type == "" {
		return nil, &types.ErrInvalidServiceType{}
	}
	if !endpointPattern.MatchString(opts.Endpoint) {
		return nil, &types.ErrInvalidEndpoint{Endpoint: opts.Endpoint}
	}
	if err := validatePriorityRequirement(opts.PriorityRequirement); err != nil {
		return nil, err
	}

	return &Service{
		alias:               opts.Alias,
		serviceType:         opts.Type,
		endpoint:            opts.Endpoint,
		priorityRequirement: copyRequirement(opts.PriorityRequirement),
		customFields:        copyCustomFields(opts.CustomFields),
	}, nil
}

func copyCustomFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// Alias returns the service's alias.
func (s *Service) Alias() string { return s.alias }

// Type returns the service type string.
func (s *Service) Type() string { return s.serviceType }

// Endpoint returns the service endpoint URL.
func (s *Service) Endpoint() string { return s.endpoint }

// PriorityRequirement returns the minimum privilege needed to revoke this
// service, or nil when unset.
func (s *Service) PriorityRequirement() *int { return copyRequirement(s.priorityRequirement) }

// CustomFields returns the open custom-field map, or nil.
func (s *Service) CustomFields() map[string]any { return copyCustomFields(s.customFields) }

// EntryObject produces the canonical on-chain representation of the service.
// Custom fields are merged first so reserved fields always win on collision.
// Only schema version 1.0.0 is supported.
func (s *Service) EntryObject(didID, schemaVersion string) (map[string]any, error) {
	if schemaVersion != types.EntrySchemaVersion {
		return nil, &types.ErrUnknownSchemaVersion{Version: schemaVersion}
	}
	obj := make(map[string]any, len(s.customFields)+4)
	for k, v := range s.customFields {
		obj[k] = v
	}
	obj["id"] = didID + "#" + s.alias
	obj["type"] = s.serviceType
	obj["serviceEndpoint"] = s.endpoint
	if s.priorityRequirement != nil {
		obj["priorityRequirement"] = *s.priorityRequirement
	} else {
		delete(obj, "priorityRequirement")
	}
	return obj, nil
}

// equal is the value equality used by the update diff.
func (s *Service) equal(other *Service) bool {
	return s.alias == other.alias &&
		s.serviceType == other.serviceType &&
		s.endpoint == other.endpoint &&
		requirementsEqual(s.priorityRequirement, other.priorityRequirement) &&
		reflect.DeepEqual(s.customFields, other.customFields)
}

func (s *Service) clone() *Service {
	c := *s
	c.priorityRequirement = copyRequirement(s.priorityRequirement)
	c.customFields = copyCustomFields(s.customFields)
	return &c
}

func cloneServices(list []*Service) []*Service {
	out := make([]*Service, len(list))
	for i, svc := range list {
		out[i] = svc.clone()
	}
	return out
}
