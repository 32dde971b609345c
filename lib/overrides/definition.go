// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package overrides

// Param is a named RPC method parameter. Declared is the type as written
// in the document; Type drops path qualifiers such as T::.
type Param struct {
	Name     string
	Type     TypeExpr
	Declared string
}

// TypeName returns the declared type of the parameter.
func (p Param) TypeName() string {
	if p.Declared != "" {
		return p.Declared
	}
	return p.Type.String()
}

// MethodDescriptor describes a custom RPC method of a chain runtime.
type MethodDescriptor struct {
	Namespace    string
	Name         string
	Description  string
	Params       []Param
	Type         TypeExpr
	DeclaredType string
}

// ReturnTypeName returns the declared return type of the method.
func (m MethodDescriptor) ReturnTypeName() string {
	if m.DeclaredType != "" {
		return m.DeclaredType
	}
	return m.Type.String()
}

// RPCName returns the JSON-RPC method name, for example
// validatormanager_activeValidators.
func (m MethodDescriptor) RPCName() string {
	return m.Namespace + "_" + m.Name
}

// Path returns the namespace qualified method name used in errors.
func (m MethodDescriptor) Path() string {
	return m.Namespace + "." + m.Name
}

// Namespace is a named group of RPC methods.
type Namespace struct {
	Name    string
	methods []MethodDescriptor
	index   map[string]int
}

// ChainDefinition is the validated, immutable set of RPC and type overrides
// of one chain. It is safe for concurrent use.
type ChainDefinition struct {
	namespaces []Namespace
	index      map[string]int
	scopes     []Scope
}

// Namespaces returns the namespace names in declaration order.
func (d *ChainDefinition) Namespaces() []string {
	names := make([]string, len(d.namespaces))
	for i, namespace := range d.namespaces {
		names[i] = namespace.Name
	}
	return names
}

// ListMethods returns the methods of a namespace in declaration order.
// It returns nil if the namespace does not exist.
func (d *ChainDefinition) ListMethods(namespace string) []MethodDescriptor {
	i, ok := d.index[namespace]
	if !ok {
		return nil
	}
	methods := d.namespaces[i].methods
	listed := make([]MethodDescriptor, len(methods))
	copy(listed, methods)
	return listed
}

// Method returns a method by namespace and name.
func (d *ChainDefinition) Method(namespace, name string) (method MethodDescriptor, ok bool) {
	i, ok := d.index[namespace]
	if !ok {
		return method, false
	}
	ns := d.namespaces[i]
	j, ok := ns.index[name]
	if !ok {
		return method, false
	}
	return ns.methods[j], true
}

// Scopes returns the version scopes in declaration order.
func (d *ChainDefinition) Scopes() []VersionScope {
	scopes := make([]VersionScope, len(d.scopes))
	for i, scope := range d.scopes {
		scopes[i] = scope.VersionScope
	}
	return scopes
}

// TypeNames returns the names of the catalog types visible at the version,
// highest priority scope first, each name once.
func (d *ChainDefinition) TypeNames(version uint32) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, layer := range d.layers(viewAt(d.scopes, version)) {
		for _, entry := range layer.entries {
			if _, ok := seen[entry.Name]; ok {
				continue
			}
			seen[entry.Name] = struct{}{}
			names = append(names, entry.Name)
		}
	}
	return names
}

// ResolveType expands a type name, or any type expression such as
// `Vec<AccountId>`, into its fully resolved shape at the given runtime
// version. Without a matching scope only the built-in types are visible.
func (d *ChainDefinition) ResolveType(typeName string, version uint32) (*ResolvedType, error) {
	expr, err := ParseTypeExpr(typeName)
	if err != nil {
		return nil, withPath(err, typeName)
	}
	return d.ResolveExpr(expr, version)
}

// ResolveExpr is like ResolveType for an already parsed expression.
func (d *ChainDefinition) ResolveExpr(expr TypeExpr, version uint32) (*ResolvedType, error) {
	return d.resolveInView(expr, viewAt(d.scopes, version))
}

func (d *ChainDefinition) resolveInView(expr TypeExpr, v view) (*ResolvedType, error) {
	r := newResolver(d.layers(v))
	t, err := r.resolveExpr(expr)
	if err != nil {
		return nil, withPath(err, expr.String())
	}
	return t, nil
}

func (d *ChainDefinition) layers(v view) []*Catalog {
	layers := make([]*Catalog, len(v))
	for i, index := range v {
		layers[i] = d.scopes[index].Catalog
	}
	return layers
}
