// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package modules

import "github.com/ChainSafe/chain-overrides/lib/overrides"

// RegistryAPI is the interface to the chain override registry
type RegistryAPI interface {
	Chains() []string
	Definition(chain string) (*overrides.ChainDefinition, error)
	ListMethods(chain, namespace string) ([]overrides.MethodDescriptor, error)
	ResolveType(chain, typeName string, version uint32) (*overrides.ResolvedType, error)
	Fingerprint(chain string, version uint32) (string, error)
}

// RPCAPI is the interface to the list of served rpc methods
type RPCAPI interface {
	Methods() []string
	BuildMethodNames(rcvr interface{}, sname string)
}
