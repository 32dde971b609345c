// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package overrides

import (
	"errors"
	"fmt"
	"strings"
)

// Load decodes and validates a JSON or YAML chain definition document.
// Validation is all or nothing: the first problem found is returned as a
// *SchemaError and no definition is produced.
func Load(data []byte) (*ChainDefinition, error) {
	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, err
	}
	return LoadDocument(doc)
}

// LoadDocument validates a decoded document. Checks run in this order:
// names, duplicate methods, parameters, version scopes, then type
// references and alias cycles.
func LoadDocument(doc *Document) (*ChainDefinition, error) {
	if err := checkNames(doc); err != nil {
		return nil, err
	}

	def := &ChainDefinition{index: make(map[string]int)}
	if err := def.buildNamespaces(doc); err != nil {
		return nil, err
	}

	if err := checkParams(doc); err != nil {
		return nil, err
	}

	if err := def.buildScopes(doc); err != nil {
		return nil, err
	}

	if err := def.parseMethods(doc); err != nil {
		return nil, err
	}

	if err := def.checkReferences(); err != nil {
		return nil, err
	}
	return def, nil
}

func checkNames(doc *Document) error {
	for _, namespace := range doc.RPC {
		if namespace.Name == "" {
			return schemaError(ErrMissingName, "rpc", "namespace has no name")
		}
		for i, method := range namespace.Methods {
			if method.Name == "" {
				return schemaError(ErrMissingName, namespace.Name,
					fmt.Sprintf("method %d has no name", i))
			}
		}
	}
	return nil
}

// buildNamespaces indexes the methods. A namespace declared twice is merged
// into its first declaration.
func (d *ChainDefinition) buildNamespaces(doc *Document) error {
	for _, namespaceDoc := range doc.RPC {
		i, ok := d.index[namespaceDoc.Name]
		if !ok {
			i = len(d.namespaces)
			d.index[namespaceDoc.Name] = i
			d.namespaces = append(d.namespaces, Namespace{
				Name:  namespaceDoc.Name,
				index: make(map[string]int),
			})
		}
		namespace := &d.namespaces[i]

		for _, methodDoc := range namespaceDoc.Methods {
			if _, exists := namespace.index[methodDoc.Name]; exists {
				return schemaError(ErrDuplicateMethod, namespace.Name+"."+methodDoc.Name,
					"method declared more than once")
			}
			namespace.index[methodDoc.Name] = len(namespace.methods)
			namespace.methods = append(namespace.methods, MethodDescriptor{
				Namespace:   namespace.Name,
				Name:        methodDoc.Name,
				Description: methodDoc.Description,
			})
		}
	}
	return nil
}

func checkParams(doc *Document) error {
	for _, namespace := range doc.RPC {
		for _, method := range namespace.Methods {
			path := namespace.Name + "." + method.Name
			names := make(map[string]struct{}, len(method.Params))
			for i, param := range method.Params {
				switch {
				case param.malformed != "":
					return schemaError(ErrMalformedParam, path, param.malformed)
				case param.Name == "":
					return schemaError(ErrMalformedParam, path, fmt.Sprintf("parameter %d has no name", i))
				case param.Type == "":
					return schemaError(ErrMalformedParam, fmt.Sprintf("%s(%s)", path, param.Name), "parameter has no type")
				}
				if _, ok := names[param.Name]; ok {
					return schemaError(ErrMalformedParam, fmt.Sprintf("%s(%s)", path, param.Name),
						"parameter name is not unique")
				}
				names[param.Name] = struct{}{}
			}

			if method.Type == "" {
				return schemaError(ErrMalformedMethod, path, "method has no return type")
			}
		}
	}
	return nil
}

func (d *ChainDefinition) buildScopes(doc *Document) error {
	for i, scopeDoc := range doc.Types {
		scope := VersionScope{Min: scopeDoc.Min, Max: scopeDoc.Max}
		if scope.Max != nil && *scope.Max <= scope.Min {
			return schemaError(ErrInvalidScope, fmt.Sprintf("types[%d]", i),
				fmt.Sprintf("empty version range %s", scope))
		}

		for j, other := range d.scopes {
			if scope.overlaps(other.VersionScope) {
				return schemaError(ErrOverlappingScope, fmt.Sprintf("types[%d]", i),
					fmt.Sprintf("%s overlaps types[%d] %s", scope, j, other.VersionScope))
			}
		}

		// catalogs are built after every interval is checked
		d.scopes = append(d.scopes, Scope{VersionScope: scope})
	}

	for i, scopeDoc := range doc.Types {
		entries := make([]CatalogEntry, 0, len(scopeDoc.Types))
		for _, typeDoc := range scopeDoc.Types {
			definition, err := definitionFromLiteral(typeDoc.Literal)
			if err != nil {
				return withPath(err, typeDoc.Name)
			}
			entries = append(entries, CatalogEntry{Name: typeDoc.Name, Definition: definition})
		}

		catalog, err := NewCatalog(entries...)
		if err != nil {
			return withPath(err, fmt.Sprintf("types[%d]", i))
		}
		d.scopes[i].Catalog = catalog
	}
	return nil
}

func (d *ChainDefinition) parseMethods(doc *Document) error {
	for _, namespaceDoc := range doc.RPC {
		namespace := &d.namespaces[d.index[namespaceDoc.Name]]
		for _, methodDoc := range namespaceDoc.Methods {
			method := &namespace.methods[namespace.index[methodDoc.Name]]
			path := method.Path()

			for _, paramDoc := range methodDoc.Params {
				expr, err := ParseTypeExpr(paramDoc.Type)
				if err != nil {
					return withPath(err, fmt.Sprintf("%s(%s)", path, paramDoc.Name))
				}
				method.Params = append(method.Params, Param{
					Name:     paramDoc.Name,
					Type:     expr,
					Declared: strings.TrimSpace(paramDoc.Type),
				})
			}

			expr, err := ParseTypeExpr(methodDoc.Type)
			if err != nil {
				return withPath(err, path)
			}
			method.Type = expr
			method.DeclaredType = strings.TrimSpace(methodDoc.Type)
		}
	}
	return nil
}

// checkReferences resolves every catalog entry and every method type in
// each distinct scope view. Method types are checked against the views
// covered by at least one scope, or against the built-in types when the
// document has no scopes.
func (d *ChainDefinition) checkReferences() error {
	seen := make(map[string]struct{})
	for _, version := range breakpoints(d.scopes) {
		v := viewAt(d.scopes, version)
		key := v.key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		if len(v) == 0 && len(d.scopes) > 0 {
			continue
		}

		r := newResolver(d.layers(v))
		for _, index := range v {
			for _, entry := range d.scopes[index].Catalog.entries {
				if _, err := r.resolveEntry(entry.Name); err != nil {
					return annotateVersion(withPath(err, entry.Name), version)
				}
			}
		}

		for _, namespace := range d.namespaces {
			for _, method := range namespace.methods {
				for _, param := range method.Params {
					if _, err := r.resolveExpr(param.Type); err != nil {
						path := fmt.Sprintf("%s(%s)", method.Path(), param.Name)
						return annotateVersion(withPath(err, path), version)
					}
				}
				if _, err := r.resolveExpr(method.Type); err != nil {
					return annotateVersion(withPath(err, method.Path()), version)
				}
			}
		}
	}
	return nil
}

func annotateVersion(err error, version uint32) error {
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		return err
	}
	annotated := *schemaErr
	annotated.Detail = fmt.Sprintf("%s at version %d", annotated.Detail, version)
	return &annotated
}

func definitionFromLiteral(literal TypeLiteral) (TypeDefinition, error) {
	reserved := literal.IsEnum || literal.Collection != "" || literal.Ordered != nil
	switch {
	case literal.Expr != "":
		expr, err := ParseTypeExpr(literal.Expr)
		if err != nil {
			return nil, err
		}
		return definitionFromExpr(expr), nil
	case reserved && len(literal.Fields) > 0:
		return nil, schemaError(ErrMalformedType, "", "reserved keys cannot be mixed with struct fields")
	case literal.IsEnum:
		return enumFromLiteral(literal)
	case literal.Collection != "":
		return collectionFromLiteral(literal)
	case literal.Ordered != nil:
		return nil, schemaError(ErrMalformedType, "", "_ordered requires _collection")
	}

	fields := make([]StructField, len(literal.Fields))
	for i, field := range literal.Fields {
		expr, err := ParseTypeExpr(field.Type)
		if err != nil {
			return nil, err
		}
		fields[i] = StructField{Name: field.Name, Type: expr}
	}
	return Struct{Fields: fields}, nil
}

func enumFromLiteral(literal TypeLiteral) (TypeDefinition, error) {
	if literal.Collection != "" || literal.Ordered != nil {
		return nil, schemaError(ErrMalformedType, "", "_enum cannot be combined with _collection")
	}

	variants := make([]EnumVariant, len(literal.Enum))
	for i, variant := range literal.Enum {
		variants[i].Name = variant.Name
		if variant.Type == "" {
			continue
		}
		expr, err := ParseTypeExpr(variant.Type)
		if err != nil {
			return nil, err
		}
		variants[i].Type = &expr
	}
	return Enum{Variants: variants}, nil
}

// collectionFromLiteral handles `{_collection: Vec, _ordered: false}`.
// The order flag defaults to true and is never inferred from the
// container name.
func collectionFromLiteral(literal TypeLiteral) (TypeDefinition, error) {
	expr, err := ParseTypeExpr(literal.Collection)
	if err != nil {
		return nil, err
	}
	if expr.Kind != ExprPath || (expr.Name != "Vec" && expr.Name != "BTreeSet") || len(expr.Args) > 1 {
		return nil, schemaError(ErrMalformedType, "",
			fmt.Sprintf("_collection must be Vec or BTreeSet, got %s", expr))
	}

	collection := Collection{Ordered: true}
	if literal.Ordered != nil {
		collection.Ordered = *literal.Ordered
	}
	if len(expr.Args) == 1 {
		elem := expr.Args[0]
		collection.Elem = &elem
	}
	return collection, nil
}
