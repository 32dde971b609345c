// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package overrides

import "strconv"

// builtins is the version independent layer consulted after every scope.
// It holds the primitives known to the client together with the aliases
// it ships for common runtime types.
var builtins = newBuiltinCatalog()

func newBuiltinCatalog() *Catalog {
	u8 := Path("u8")
	entries := []CatalogEntry{
		{Name: "bool", Definition: Primitive{Kind: KindBool}},
		{Name: "Bool", Definition: Primitive{Kind: KindBool}},
		{Name: "Text", Definition: Primitive{Kind: KindText}},
		{Name: "String", Definition: Primitive{Kind: KindText}},
		{Name: "Str", Definition: Primitive{Kind: KindText}},
		{Name: "Null", Definition: Primitive{Kind: KindNull}},
		{Name: "Bytes", Definition: Collection{Elem: &u8, Ordered: true}},

		{Name: "Vec", Definition: Collection{Ordered: true}},
		{Name: "BTreeSet", Definition: Collection{Ordered: false}},
		{Name: "Option", Definition: Option{}},
		{Name: "Compact", Definition: Compact{}},

		{Name: "H160", Definition: FixedArray{Elem: u8, Len: 20}},
		{Name: "H256", Definition: FixedArray{Elem: u8, Len: 32}},
		{Name: "H512", Definition: FixedArray{Elem: u8, Len: 64}},
		{Name: "Hash", Definition: Alias{Target: Path("H256")}},
		{Name: "AccountId32", Definition: FixedArray{Elem: u8, Len: 32}},
		{Name: "AccountId", Definition: Alias{Target: Path("AccountId32")}},
		{Name: "AccountId20", Definition: FixedArray{Elem: u8, Len: 20}},
		{Name: "EthereumAccountId", Definition: FixedArray{Elem: u8, Len: 20}},

		{Name: "BlockNumber", Definition: Alias{Target: Path("u32")}},
		{Name: "Index", Definition: Alias{Target: Path("u32")}},
		{Name: "Balance", Definition: Alias{Target: Path("u128")}},
		{Name: "Moment", Definition: Alias{Target: Path("u64")}},
		{Name: "Weight", Definition: Alias{Target: Path("u64")}},
		{Name: "Perbill", Definition: Alias{Target: Path("u32")}},
		{Name: "Permill", Definition: Alias{Target: Path("u32")}},
	}

	for _, bits := range []uint16{8, 16, 32, 64, 128, 256} {
		width := strconv.Itoa(int(bits))
		entries = append(entries,
			CatalogEntry{Name: "u" + width, Definition: Numeric{Bits: bits}},
			CatalogEntry{Name: "U" + width, Definition: Numeric{Bits: bits}},
			CatalogEntry{Name: "i" + width, Definition: Numeric{Bits: bits, Signed: true}},
			CatalogEntry{Name: "I" + width, Definition: Numeric{Bits: bits, Signed: true}},
		)
	}

	catalog, err := NewCatalog(entries...)
	if err != nil {
		panic(err)
	}
	return catalog
}

// IsBuiltin returns true if the type name is known without any chain
// definition.
func IsBuiltin(name string) bool {
	_, ok := builtins.Lookup(name)
	return ok
}
