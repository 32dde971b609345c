// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package overrides

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ResolvedType_Signature(t *testing.T) {
	t.Parallel()

	account := &ResolvedType{Kind: KindFixedBytes, Name: "AccountId", Length: 20}
	u32 := &ResolvedType{Kind: KindNumeric, Bits: 32}

	testCases := map[string]struct {
		resolved  *ResolvedType
		signature string
	}{
		"numeric": {
			resolved:  &ResolvedType{Kind: KindNumeric, Name: "Balance", Bits: 128},
			signature: "u128",
		},
		"signed_numeric": {
			resolved:  &ResolvedType{Kind: KindNumeric, Bits: 64, Signed: true},
			signature: "i64",
		},
		"null": {
			resolved:  &ResolvedType{Kind: KindNull},
			signature: "()",
		},
		"struct": {
			resolved: &ResolvedType{
				Kind: KindStruct,
				Name: "TreeNode",
				Fields: []ResolvedField{
					{Name: "parent", Type: &ResolvedType{Kind: KindOption, Elem: account}},
					{Name: "children", Type: &ResolvedType{Kind: KindCollection, Ordered: true, Elem: account}},
				},
			},
			signature: "{parent: Option<[u8; 20]>, children: Vec<[u8; 20]>}",
		},
		"set": {
			resolved:  &ResolvedType{Kind: KindCollection, Elem: u32},
			signature: "Set<u32>",
		},
		"tuple": {
			resolved: &ResolvedType{
				Kind:    KindTuple,
				Members: []*ResolvedType{account, {Kind: KindBool}},
			},
			signature: "([u8; 20], bool)",
		},
		"array": {
			resolved:  &ResolvedType{Kind: KindArray, Length: 3, Elem: u32},
			signature: "[u32; 3]",
		},
		"compact": {
			resolved:  &ResolvedType{Kind: KindCompact, Elem: u32},
			signature: "Compact<u32>",
		},
		"enum": {
			resolved: &ResolvedType{
				Kind: KindEnum,
				Variants: []ResolvedField{
					{Name: "Transfer", Type: &ResolvedType{Kind: KindText}},
					{Name: "Noop"},
				},
			},
			signature: "enum {Transfer(Text), Noop}",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.signature, testCase.resolved.Signature())
		})
	}
}

func Test_ResolvedType_Tree(t *testing.T) {
	t.Parallel()

	definition := mustLoad(t, `{"types": [{"minmax": [0, null], "types": {
		"AccountId": "EthereumAccountId",
		"TreeNode": {"parent": "Option<AccountId>", "children": "Vec<AccountId>"}}}]}`)

	resolved, err := definition.ResolveType("TreeNode", 0)
	require.NoError(t, err)

	tree := resolved.Tree()

	assert.Contains(t, tree, "TreeNode struct\n")
	assert.Contains(t, tree, "parent: option\n")
	assert.Contains(t, tree, "children: sequence\n")
	assert.Contains(t, tree, "AccountId [u8; 20]\n")
}

func Test_ResolvedType_JSON(t *testing.T) {
	t.Parallel()

	resolved := &ResolvedType{
		Kind: KindOption,
		Elem: &ResolvedType{Kind: KindNumeric, Name: "Balance", Bits: 128},
	}

	data, err := json.Marshal(resolved)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind": "option", "elem": {"kind": "numeric", "name": "Balance", "bits": 128}}`, string(data))

	var decoded ResolvedType
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)
	assert.Equal(t, resolved, &decoded)
}

func Test_Kind_UnmarshalText(t *testing.T) {
	t.Parallel()

	var kind Kind
	err := kind.UnmarshalText([]byte("fixedBytes"))
	require.NoError(t, err)
	assert.Equal(t, KindFixedBytes, kind)

	err = kind.UnmarshalText([]byte("float"))
	assert.EqualError(t, err, `unknown kind "float"`)

	_, err = Kind(200).MarshalText()
	assert.EqualError(t, err, "unknown kind 200")
	assert.Equal(t, "kind(200)", Kind(200).String())
}
