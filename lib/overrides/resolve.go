// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package overrides

import (
	"errors"
	"fmt"
	"strings"
)

var nullType = &ResolvedType{Kind: KindNull}

// placeholderArg is applied to constructors validated on their own. It is
// an unsigned integer so that every built-in constructor accepts it.
var placeholderArg = &ResolvedType{Kind: KindNumeric, Bits: 8}

// resolver expands type expressions against a stack of catalogs,
// ending with the built-in catalog. It is not safe for concurrent use;
// a new resolver is created per query.
type resolver struct {
	layers []*Catalog
	chain  []string
}

func newResolver(layers []*Catalog) *resolver {
	return &resolver{
		layers: append(layers[:len(layers):len(layers)], builtins),
	}
}

func (r *resolver) lookup(name string) (TypeDefinition, bool) {
	for _, layer := range r.layers {
		if def, ok := layer.Lookup(name); ok {
			return def, true
		}
	}
	return nil, false
}

// arity returns 1 if the name is a constructor needing a type argument,
// following bare aliases such as `BTreeSet: 'Vec'`.
func (r *resolver) arity(name string) int {
	seen := make(map[string]struct{})
	for {
		if _, ok := seen[name]; ok {
			return 0
		}
		seen[name] = struct{}{}

		def, ok := r.lookup(name)
		if !ok {
			return 0
		}
		if isConstructor(def) {
			return 1
		}
		alias, ok := def.(Alias)
		if !ok || !alias.Target.IsBare() {
			return 0
		}
		name = alias.Target.Name
	}
}

// resolveEntry resolves a catalog entry on its own, applying a placeholder
// argument to constructors.
func (r *resolver) resolveEntry(name string) (*ResolvedType, error) {
	if r.arity(name) == 1 {
		return r.resolveName(name, []*ResolvedType{placeholderArg})
	}
	return r.resolveName(name, nil)
}

func (r *resolver) resolveExpr(expr TypeExpr) (*ResolvedType, error) {
	switch expr.Kind {
	case ExprTuple:
		if len(expr.Args) == 0 {
			return nullType, nil
		}
		members, err := r.resolveAll(expr.Args)
		if err != nil {
			return nil, err
		}
		return &ResolvedType{Kind: KindTuple, Members: members}, nil
	case ExprArray:
		elem, err := r.resolveExpr(expr.Args[0])
		if err != nil {
			return nil, err
		}
		return arrayOf(elem, expr.Len), nil
	default:
		// arguments belong to the referencing type, not to the definition
		// they are applied to
		args, err := r.resolveAll(expr.Args)
		if err != nil {
			return nil, err
		}
		return r.resolveName(expr.Name, args)
	}
}

func (r *resolver) resolveAll(exprs []TypeExpr) ([]*ResolvedType, error) {
	resolved := make([]*ResolvedType, len(exprs))
	for i, expr := range exprs {
		t, err := r.resolveExpr(expr)
		if err != nil {
			return nil, err
		}
		resolved[i] = t
	}
	return resolved, nil
}

func (r *resolver) resolveName(name string, args []*ResolvedType) (*ResolvedType, error) {
	def, ok := r.lookup(name)
	if !ok {
		return nil, r.unresolved(name)
	}

	for i, seen := range r.chain {
		if seen == name {
			cycle := append(r.chain[i:len(r.chain):len(r.chain)], name)
			return nil, schemaError(ErrCyclicAlias, "", strings.Join(cycle, " -> "))
		}
	}

	r.chain = append(r.chain, name)
	defer func() { r.chain = r.chain[:len(r.chain)-1] }()

	t, err := r.resolveDefinition(name, def, args)
	if err != nil {
		return nil, err
	}
	if isConstructor(def) {
		return t, nil
	}
	return t.named(name), nil
}

func (r *resolver) resolveDefinition(name string, def TypeDefinition, args []*ResolvedType) (*ResolvedType, error) {
	if isConstructor(def) {
		if len(args) != 1 {
			return nil, schemaError(ErrMalformedType, "",
				fmt.Sprintf("%s expects 1 type argument, got %d", name, len(args)))
		}
		elem := args[0]

		switch d := def.(type) {
		case Collection:
			return &ResolvedType{Kind: KindCollection, Ordered: d.Ordered, Elem: elem}, nil
		case Option:
			return &ResolvedType{Kind: KindOption, Elem: elem}, nil
		default:
			return compactOf(name, elem)
		}
	}

	if alias, ok := def.(Alias); ok && len(args) > 0 && alias.Target.IsBare() {
		return r.resolveName(alias.Target.Name, args)
	}

	// arguments applied to a type that takes none were checked by the
	// caller and are dropped, as in `TreeNode<AccountId>` for a plain struct

	switch d := def.(type) {
	case Alias:
		return r.resolveExpr(d.Target)
	case Primitive:
		return &ResolvedType{Kind: d.Kind}, nil
	case Numeric:
		return &ResolvedType{Kind: KindNumeric, Bits: d.Bits, Signed: d.Signed}, nil
	case Struct:
		fields := make([]ResolvedField, len(d.Fields))
		for i, field := range d.Fields {
			t, err := r.resolveExpr(field.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = ResolvedField{Name: field.Name, Type: t}
		}
		return &ResolvedType{Kind: KindStruct, Fields: fields}, nil
	case Enum:
		variants := make([]ResolvedField, len(d.Variants))
		for i, variant := range d.Variants {
			variants[i].Name = variant.Name
			if variant.Type == nil {
				continue
			}
			t, err := r.resolveExpr(*variant.Type)
			if err != nil {
				return nil, err
			}
			variants[i].Type = t
		}
		return &ResolvedType{Kind: KindEnum, Variants: variants}, nil
	case Composite:
		if len(d.Members) == 0 {
			return nullType, nil
		}
		members, err := r.resolveAll(d.Members)
		if err != nil {
			return nil, err
		}
		return &ResolvedType{Kind: KindTuple, Members: members}, nil
	case Collection:
		elem, err := r.resolveExpr(*d.Elem)
		if err != nil {
			return nil, err
		}
		return &ResolvedType{Kind: KindCollection, Ordered: d.Ordered, Elem: elem}, nil
	case Option:
		elem, err := r.resolveExpr(*d.Elem)
		if err != nil {
			return nil, err
		}
		return &ResolvedType{Kind: KindOption, Elem: elem}, nil
	case Compact:
		elem, err := r.resolveExpr(*d.Elem)
		if err != nil {
			return nil, err
		}
		return compactOf(name, elem)
	case FixedArray:
		elem, err := r.resolveExpr(d.Elem)
		if err != nil {
			return nil, err
		}
		return arrayOf(elem, d.Len), nil
	default:
		return nil, fmt.Errorf("unknown type definition %T", def)
	}
}

func (r *resolver) unresolved(name string) error {
	detail := fmt.Sprintf("type %q is not defined", name)
	if len(r.chain) > 0 {
		detail += " (via " + strings.Join(r.chain, " -> ") + ")"
	}
	return schemaError(ErrUnresolvedType, "", detail)
}

func arrayOf(elem *ResolvedType, length uint32) *ResolvedType {
	if elem.Kind == KindNumeric && elem.Bits == 8 && !elem.Signed {
		return &ResolvedType{Kind: KindFixedBytes, Length: length}
	}
	return &ResolvedType{Kind: KindArray, Elem: elem, Length: length}
}

func compactOf(name string, elem *ResolvedType) (*ResolvedType, error) {
	if elem.Kind != KindNumeric || elem.Signed {
		return nil, schemaError(ErrMalformedType, "",
			fmt.Sprintf("%s requires an unsigned integer, got %s", name, elem.Signature()))
	}
	return &ResolvedType{Kind: KindCompact, Elem: elem}, nil
}

// withPath sets the path of a schema error that does not have one yet.
func withPath(err error, path string) error {
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) || schemaErr.Path != "" {
		return err
	}
	annotated := *schemaErr
	annotated.Path = path
	return &annotated
}
