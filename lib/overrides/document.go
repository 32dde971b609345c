// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package overrides

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is the decoded, not yet validated, form of a chain definition:
//
//	rpc:   { <namespace>: { <method>: { description, params: [{name, type}], type } } }
//	types: [ { minmax: [min, max|null], types: { <name>: <literal> } } ]
//
// Every list keeps the declaration order of the source.
type Document struct {
	RPC   []NamespaceDocument
	Types []ScopeDocument
}

// NamespaceDocument is a group of RPC methods.
type NamespaceDocument struct {
	Name    string
	Methods []MethodDocument
}

// MethodDocument describes one RPC method.
type MethodDocument struct {
	Name        string
	Description string
	Params      []ParamDocument
	Type        string
}

// ParamDocument is a method parameter.
type ParamDocument struct {
	Name string
	Type string

	// malformed is set by the decoder when the parameter is not a
	// {name, type} mapping of strings.
	malformed string
}

// ScopeDocument is a type table applying to runtime versions [Min, Max).
// A nil Max means no upper limit.
type ScopeDocument struct {
	Min   uint32
	Max   *uint32
	Types []TypeDocument
}

// TypeDocument is one catalog entry.
type TypeDocument struct {
	Name    string
	Literal TypeLiteral
}

// FieldLiteral is a name to type string pair of an object literal.
type FieldLiteral struct {
	Name string
	Type string
}

// TypeLiteral is either a type expression string, a struct object
// (field name to type), or an object using the reserved keys
// `_enum`, `_collection` and `_ordered`.
type TypeLiteral struct {
	Expr   string
	Fields []FieldLiteral

	IsEnum bool
	// Enum variants. Variants declared in list form have an empty Type.
	Enum []FieldLiteral

	Collection string
	Ordered    *bool
}

// DecodeDocument decodes a JSON or YAML chain definition document.
func DecodeDocument(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, schemaError(ErrMalformedDocument, "", "empty document")
	}

	doc := new(Document)
	err := yaml.Unmarshal(data, doc)
	if err != nil {
		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) {
			return nil, schemaErr
		}
		return nil, schemaError(ErrMalformedDocument, "", err.Error())
	}
	return doc, nil
}

// UnmarshalYAML implements yaml.Unmarshaler, walking the node tree by hand
// so the declaration order of every mapping is kept.
func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	value = deref(value)
	if value.Kind != yaml.MappingNode {
		return malformed("", value, "document must be a mapping")
	}

	return eachPair(value, func(key string, node *yaml.Node) (err error) {
		switch key {
		case "rpc":
			d.RPC, err = decodeNamespaces(node)
		case "types":
			d.Types, err = decodeScopes(node)
		}
		return err
	})
}

func decodeNamespaces(node *yaml.Node) (namespaces []NamespaceDocument, err error) {
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, malformed("rpc", node, "rpc must be a mapping of namespaces")
	}

	err = eachPair(node, func(name string, methodsNode *yaml.Node) error {
		namespace := NamespaceDocument{Name: name}
		if isNull(methodsNode) {
			namespaces = append(namespaces, namespace)
			return nil
		}
		if methodsNode.Kind != yaml.MappingNode {
			return malformed("rpc."+name, methodsNode, "namespace must be a mapping of methods")
		}

		err := eachPair(methodsNode, func(methodName string, methodNode *yaml.Node) error {
			method, err := decodeMethod(name+"."+methodName, methodNode)
			if err != nil {
				return err
			}
			method.Name = methodName
			namespace.Methods = append(namespace.Methods, method)
			return nil
		})
		if err != nil {
			return err
		}
		namespaces = append(namespaces, namespace)
		return nil
	})
	return namespaces, err
}

func decodeMethod(path string, node *yaml.Node) (method MethodDocument, err error) {
	if node.Kind != yaml.MappingNode {
		return method, malformed(path, node, "method must be a mapping")
	}

	err = eachPair(node, func(key string, value *yaml.Node) error {
		switch key {
		case "description":
			if !isString(value) {
				return malformed(path, value, "description must be a string")
			}
			method.Description = value.Value
		case "type":
			if isString(value) {
				method.Type = value.Value
			}
		case "params":
			if isNull(value) {
				return nil
			}
			if value.Kind != yaml.SequenceNode {
				return malformed(path, value, "params must be a list")
			}
			for _, paramNode := range value.Content {
				method.Params = append(method.Params, decodeParam(deref(paramNode)))
			}
		}
		return nil
	})
	return method, err
}

func decodeParam(node *yaml.Node) (param ParamDocument) {
	if node.Kind != yaml.MappingNode {
		param.malformed = fmt.Sprintf("line %d: parameter must be a mapping", node.Line)
		return param
	}

	_ = eachPair(node, func(key string, value *yaml.Node) error {
		switch key {
		case "name":
			if !isString(value) {
				param.malformed = fmt.Sprintf("line %d: parameter name must be a string", value.Line)
				return nil
			}
			param.Name = value.Value
		case "type":
			if !isString(value) {
				param.malformed = fmt.Sprintf("line %d: parameter type must be a string", value.Line)
				return nil
			}
			param.Type = value.Value
		}
		return nil
	})
	return param
}

func decodeScopes(node *yaml.Node) (scopes []ScopeDocument, err error) {
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, malformed("types", node, "types must be a list of version scopes")
	}

	for i, scopeNode := range node.Content {
		path := fmt.Sprintf("types[%d]", i)
		scope, err := decodeScope(path, deref(scopeNode))
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, scope)
	}
	return scopes, nil
}

func decodeScope(path string, node *yaml.Node) (scope ScopeDocument, err error) {
	if node.Kind != yaml.MappingNode {
		return scope, malformed(path, node, "version scope must be a mapping")
	}

	err = eachPair(node, func(key string, value *yaml.Node) error {
		switch key {
		case "minmax":
			return decodeMinMax(path, value, &scope)
		case "types":
			if isNull(value) {
				return nil
			}
			if value.Kind != yaml.MappingNode {
				return malformed(path, value, "types must be a mapping of type names")
			}
			return eachPair(value, func(name string, literalNode *yaml.Node) error {
				literal, err := decodeLiteral(name, literalNode)
				if err != nil {
					return err
				}
				scope.Types = append(scope.Types, TypeDocument{Name: name, Literal: literal})
				return nil
			})
		}
		return nil
	})
	return scope, err
}

func decodeMinMax(path string, node *yaml.Node, scope *ScopeDocument) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) == 0 || len(node.Content) > 2 {
		return malformed(path, node, "minmax must be a list of one or two versions")
	}

	min, err := decodeVersion(path, node.Content[0])
	if err != nil {
		return err
	}
	if min != nil {
		scope.Min = *min
	}

	if len(node.Content) == 2 {
		scope.Max, err = decodeVersion(path, node.Content[1])
		if err != nil {
			return err
		}
	}
	return nil
}

// decodeVersion returns nil for null, `~` and `undefined` bounds.
func decodeVersion(path string, node *yaml.Node) (*uint32, error) {
	node = deref(node)
	if isNull(node) || (node.Kind == yaml.ScalarNode && node.Value == "undefined") {
		return nil, nil //nolint:nilnil
	}

	var version uint32
	if node.Kind != yaml.ScalarNode || node.Tag != "!!int" {
		return nil, malformed(path, node, fmt.Sprintf("version %q is not an integer", node.Value))
	}
	if err := node.Decode(&version); err != nil {
		return nil, malformed(path, node, fmt.Sprintf("version %q is out of range", node.Value))
	}
	return &version, nil
}

func decodeLiteral(name string, node *yaml.Node) (literal TypeLiteral, err error) {
	node = deref(node)
	if isString(node) {
		if node.Value == "" {
			return literal, malformedType(name, node, "type must not be empty")
		}
		literal.Expr = node.Value
		return literal, nil
	}
	if node.Kind != yaml.MappingNode {
		return literal, malformedType(name, node, "type must be a string or a mapping")
	}

	err = eachPair(node, func(key string, value *yaml.Node) error {
		switch key {
		case "_enum":
			literal.IsEnum = true
			return decodeEnum(name, value, &literal)
		case "_collection":
			if !isString(value) {
				return malformedType(name, value, "_collection must be a type name")
			}
			literal.Collection = value.Value
		case "_ordered":
			var ordered bool
			if value.Kind != yaml.ScalarNode || value.Tag != "!!bool" || value.Decode(&ordered) != nil {
				return malformedType(name, value, "_ordered must be a boolean")
			}
			literal.Ordered = &ordered
		default:
			if !isString(value) {
				return malformedType(name, value, fmt.Sprintf("field %q must have a type string", key))
			}
			literal.Fields = append(literal.Fields, FieldLiteral{Name: key, Type: value.Value})
		}
		return nil
	})
	return literal, err
}

func decodeEnum(name string, node *yaml.Node, literal *TypeLiteral) error {
	switch node.Kind {
	case yaml.SequenceNode:
		for _, variant := range node.Content {
			variant = deref(variant)
			if !isString(variant) {
				return malformedType(name, variant, "enum variant must be a name")
			}
			literal.Enum = append(literal.Enum, FieldLiteral{Name: variant.Value})
		}
		return nil
	case yaml.MappingNode:
		return eachPair(node, func(variant string, value *yaml.Node) error {
			field := FieldLiteral{Name: variant}
			if !isNull(value) {
				if !isString(value) {
					return malformedType(name, value, fmt.Sprintf("enum variant %q must have a type string", variant))
				}
				field.Type = value.Value
			}
			literal.Enum = append(literal.Enum, field)
			return nil
		})
	default:
		return malformedType(name, node, "_enum must be a list or a mapping")
	}
}

func eachPair(node *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := deref(node.Content[i])
		if key.Kind != yaml.ScalarNode {
			return malformed("", key, "mapping keys must be scalars")
		}
		if err := fn(key.Value, deref(node.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

func deref(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		return deref(node.Content[0])
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func isString(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!str"
}

func malformed(path string, node *yaml.Node, detail string) error {
	return schemaError(ErrMalformedDocument, path, fmt.Sprintf("line %d: %s", node.Line, detail))
}

func malformedType(name string, node *yaml.Node, detail string) error {
	return schemaError(ErrMalformedType, name, fmt.Sprintf("line %d: %s", node.Line, detail))
}
