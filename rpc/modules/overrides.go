// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package modules

import (
	"fmt"
	"net/http"

	"github.com/ChainSafe/chain-overrides/lib/overrides"
)

// EmptyRequest represents an RPC request with no fields
type EmptyRequest struct{}

// ChainRequest holds the chain name of a request
type ChainRequest struct {
	Chain string `json:"chain" validate:"required"`
}

// VersionRequest holds a chain name and a runtime spec version
type VersionRequest struct {
	Chain       string `json:"chain" validate:"required"`
	SpecVersion uint32 `json:"specVersion"`
}

// ListMethodsRequest holds the chain and the optional namespace to list.
// An empty namespace lists the methods of every namespace.
type ListMethodsRequest struct {
	Chain     string `json:"chain" validate:"required"`
	Namespace string `json:"namespace"`
}

// ResolveTypeRequest holds the type expression to resolve at a spec version
type ResolveTypeRequest struct {
	Chain       string `json:"chain" validate:"required"`
	Type        string `json:"type" validate:"required"`
	SpecVersion uint32 `json:"specVersion"`
}

// ParamResponse is a method parameter
type ParamResponse struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// MethodResponse describes a custom RPC method
type MethodResponse struct {
	Namespace   string          `json:"namespace"`
	Name        string          `json:"name"`
	RPCName     string          `json:"rpcName"`
	Description string          `json:"description,omitempty"`
	Params      []ParamResponse `json:"params"`
	Type        string          `json:"type"`
}

// StringsResponse is a list of strings
type StringsResponse []string

// OverridesModule serves the chain override registry over RPC
type OverridesModule struct {
	registryAPI RegistryAPI
}

// NewOverridesModule creates a new overrides module
func NewOverridesModule(registryAPI RegistryAPI) *OverridesModule {
	return &OverridesModule{
		registryAPI: registryAPI,
	}
}

// Chains returns the sorted names of the registered chains
func (om *OverridesModule) Chains(_ *http.Request, _ *EmptyRequest, res *StringsResponse) error {
	*res = om.registryAPI.Chains()
	if *res == nil {
		*res = StringsResponse{}
	}
	return nil
}

// Namespaces returns the RPC namespaces of a chain in declaration order
func (om *OverridesModule) Namespaces(_ *http.Request, req *ChainRequest, res *StringsResponse) error {
	definition, err := om.registryAPI.Definition(req.Chain)
	if err != nil {
		return err
	}

	*res = definition.Namespaces()
	if *res == nil {
		*res = StringsResponse{}
	}
	return nil
}

// ListMethods returns the custom RPC methods of a chain namespace,
// or of every namespace if none is given
func (om *OverridesModule) ListMethods(_ *http.Request, req *ListMethodsRequest, res *[]MethodResponse) error {
	namespaces := []string{req.Namespace}
	if req.Namespace == "" {
		definition, err := om.registryAPI.Definition(req.Chain)
		if err != nil {
			return err
		}
		namespaces = definition.Namespaces()
	}

	methods := []MethodResponse{}
	for _, namespace := range namespaces {
		descriptors, err := om.registryAPI.ListMethods(req.Chain, namespace)
		if err != nil {
			return err
		}
		for _, descriptor := range descriptors {
			methods = append(methods, newMethodResponse(descriptor))
		}
	}

	*res = methods
	return nil
}

// ResolveType resolves a type expression of a chain at a spec version
func (om *OverridesModule) ResolveType(_ *http.Request, req *ResolveTypeRequest, res *overrides.ResolvedType) error {
	resolved, err := om.registryAPI.ResolveType(req.Chain, req.Type, req.SpecVersion)
	if err != nil {
		return fmt.Errorf("resolving type %s of chain %s at version %d: %w",
			req.Type, req.Chain, req.SpecVersion, err)
	}

	*res = *resolved
	return nil
}

// TypeNames returns the custom type names visible at a spec version
func (om *OverridesModule) TypeNames(_ *http.Request, req *VersionRequest, res *StringsResponse) error {
	definition, err := om.registryAPI.Definition(req.Chain)
	if err != nil {
		return err
	}

	*res = definition.TypeNames(req.SpecVersion)
	if *res == nil {
		*res = StringsResponse{}
	}
	return nil
}

// Fingerprint returns the hex encoded hash of the overrides in force at a spec version
func (om *OverridesModule) Fingerprint(_ *http.Request, req *VersionRequest, res *string) error {
	fingerprint, err := om.registryAPI.Fingerprint(req.Chain, req.SpecVersion)
	if err != nil {
		return err
	}

	*res = fingerprint
	return nil
}

func newMethodResponse(descriptor overrides.MethodDescriptor) MethodResponse {
	params := make([]ParamResponse, len(descriptor.Params))
	for i, param := range descriptor.Params {
		params[i] = ParamResponse{
			Name: param.Name,
			Type: param.TypeName(),
		}
	}

	return MethodResponse{
		Namespace:   descriptor.Namespace,
		Name:        descriptor.Name,
		RPCName:     descriptor.RPCName(),
		Description: descriptor.Description,
		Params:      params,
		Type:        descriptor.ReturnTypeName(),
	}
}
