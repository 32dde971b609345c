// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package peerplays

import (
	_ "embed"

	"github.com/ChainSafe/chain-overrides/lib/overrides"
)

// Name is the chain name the peerplays definition is registered under
const Name = "peerplays"

//go:embed overrides.json
var definition []byte

// Definition returns a copy of the embedded peerplays override document
func Definition() []byte {
	data := make([]byte, len(definition))
	copy(data, definition)
	return data
}

// Register loads the embedded peerplays definition into the registry
func Register(registry *overrides.Registry) (*overrides.ChainDefinition, error) {
	return registry.Load(Name, definition)
}
