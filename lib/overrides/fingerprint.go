// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package overrides

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/ChainSafe/chain-overrides/lib/common"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

type encodedType struct {
	Name      []byte
	Signature []byte
}

type encodedParam struct {
	Name      []byte
	Signature []byte
}

type encodedMethod struct {
	Name   []byte
	Params []encodedParam
	Return []byte
}

type encodedDefinition struct {
	Version uint32
	Types   []encodedType
	Methods []encodedMethod
}

// Fingerprint returns the blake2b-256 hash of the SCALE encoded resolved
// catalog and method table visible at the version. Two definitions with the
// same fingerprint resolve every type and method identically at that version.
// Method types are only checked at load in versions covered by a scope, so the
// method table is left out at versions no scope covers.
func (d *ChainDefinition) Fingerprint(version uint32) (common.Hash, error) {
	encoded, err := d.encode(version)
	if err != nil {
		return common.EmptyHash, err
	}
	return common.Blake2bHash(encoded), nil
}

func (d *ChainDefinition) encode(version uint32) ([]byte, error) {
	v := viewAt(d.scopes, version)
	r := newResolver(d.layers(v))

	names := d.TypeNames(version)
	sort.Strings(names)

	definition := encodedDefinition{Version: version}
	for _, name := range names {
		t, err := r.resolveEntry(name)
		if err != nil {
			return nil, withPath(err, name)
		}
		definition.Types = append(definition.Types, encodedType{
			Name:      []byte(name),
			Signature: []byte(t.Signature()),
		})
	}

	if len(v) == 0 && len(d.scopes) > 0 {
		return encodeDefinition(definition)
	}

	for _, namespace := range d.namespaces {
		for _, method := range namespace.methods {
			encoded := encodedMethod{Name: []byte(method.RPCName())}
			for _, param := range method.Params {
				t, err := r.resolveExpr(param.Type)
				if err != nil {
					return nil, withPath(err, method.Path())
				}
				encoded.Params = append(encoded.Params, encodedParam{
					Name:      []byte(param.Name),
					Signature: []byte(t.Signature()),
				})
			}

			t, err := r.resolveExpr(method.Type)
			if err != nil {
				return nil, withPath(err, method.Path())
			}
			encoded.Return = []byte(t.Signature())
			definition.Methods = append(definition.Methods, encoded)
		}
	}
	return encodeDefinition(definition)
}

func encodeDefinition(definition encodedDefinition) ([]byte, error) {
	var buffer bytes.Buffer
	if err := scale.NewEncoder(&buffer).Encode(definition); err != nil {
		return nil, fmt.Errorf("encoding definition: %w", err)
	}
	return buffer.Bytes(), nil
}
