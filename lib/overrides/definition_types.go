// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package overrides

// TypeDefinition is the decoding structure of a catalog entry.
// It is a closed set of variants: Alias, Struct, Collection, Numeric,
// Composite, Option, Enum, FixedArray, Compact and Primitive.
type TypeDefinition interface {
	isTypeDefinition()
}

// Alias makes the entry a synonym for another type.
// A bare target such as `Vec` passes generic arguments through,
// so `BTreeSet: 'Vec'` turns `BTreeSet<u32>` into `Vec<u32>`.
type Alias struct {
	Target TypeExpr
}

// StructField is a named, positional struct member.
type StructField struct {
	Name string
	Type TypeExpr
}

// Struct is an ordered list of fields.
type Struct struct {
	Fields []StructField
}

// Collection is a homogeneous container. A nil Elem makes it a
// constructor taking the element as its single generic argument.
// Ordered is false for set-like containers.
type Collection struct {
	Elem    *TypeExpr
	Ordered bool
}

// Numeric is a fixed-width integer.
type Numeric struct {
	Bits   uint16
	Signed bool
}

// Composite is a tuple of member types.
type Composite struct {
	Members []TypeExpr
}

// Option wraps an optional value. A nil Elem makes it a constructor.
type Option struct {
	Elem *TypeExpr
}

// EnumVariant is one variant of an Enum. A nil Type carries no value.
type EnumVariant struct {
	Name string
	Type *TypeExpr
}

// Enum is a tagged union.
type Enum struct {
	Variants []EnumVariant
}

// FixedArray is an array of Len elements.
type FixedArray struct {
	Elem TypeExpr
	Len  uint32
}

// Compact is a compact encoded number. A nil Elem makes it a constructor.
type Compact struct {
	Elem *TypeExpr
}

// Primitive is a leaf without parameters: bool, text or null.
type Primitive struct {
	Kind Kind
}

func (Alias) isTypeDefinition()      {}
func (Struct) isTypeDefinition()     {}
func (Collection) isTypeDefinition() {}
func (Numeric) isTypeDefinition()    {}
func (Composite) isTypeDefinition()  {}
func (Option) isTypeDefinition()     {}
func (Enum) isTypeDefinition()       {}
func (FixedArray) isTypeDefinition() {}
func (Compact) isTypeDefinition()    {}
func (Primitive) isTypeDefinition()  {}

// isConstructor returns true if the definition needs one generic argument
// to be resolved.
func isConstructor(def TypeDefinition) bool {
	switch d := def.(type) {
	case Collection:
		return d.Elem == nil
	case Option:
		return d.Elem == nil
	case Compact:
		return d.Elem == nil
	}
	return false
}

// definitionFromExpr converts a textual catalog literal into its definition.
// Constructor applications become their structural variant so that
// `Vec<AccountId>` is a Collection rather than an opaque alias.
func definitionFromExpr(expr TypeExpr) TypeDefinition {
	switch expr.Kind {
	case ExprTuple:
		return Composite{Members: expr.Args}
	case ExprArray:
		return FixedArray{Elem: expr.Args[0], Len: expr.Len}
	}

	if len(expr.Args) == 1 {
		elem := expr.Args[0]
		switch expr.Name {
		case "Vec":
			return Collection{Elem: &elem, Ordered: true}
		case "BTreeSet":
			return Collection{Elem: &elem, Ordered: false}
		case "Option":
			return Option{Elem: &elem}
		case "Compact":
			return Compact{Elem: &elem}
		}
	}
	return Alias{Target: expr}
}
