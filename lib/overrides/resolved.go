// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package overrides

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/disiqueira/gotree"
)

// Kind is the shape of a resolved type node.
type Kind uint8

const (
	KindBool Kind = iota
	KindNumeric
	KindText
	KindNull
	KindFixedBytes
	KindStruct
	KindCollection
	KindOption
	KindTuple
	KindArray
	KindEnum
	KindCompact
)

var kindNames = [...]string{
	KindBool:       "bool",
	KindNumeric:    "numeric",
	KindText:       "text",
	KindNull:       "null",
	KindFixedBytes: "fixedBytes",
	KindStruct:     "struct",
	KindCollection: "collection",
	KindOption:     "option",
	KindTuple:      "tuple",
	KindArray:      "array",
	KindEnum:       "enum",
	KindCompact:    "compact",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown kind %d", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown kind %q", text)
}

// ResolvedField is a named member of a resolved struct or enum.
type ResolvedField struct {
	Name string        `json:"name"`
	Type *ResolvedType `json:"type"`
}

// ResolvedType is a fully expanded type: a tree whose leaves are
// primitives. Trees returned by the resolver may be shared and must
// not be modified.
type ResolvedType struct {
	Kind Kind `json:"kind"`
	// Name is the outermost type name that produced this node, if any.
	Name    string          `json:"name,omitempty"`
	Bits    uint16          `json:"bits,omitempty"`
	Signed  bool            `json:"signed,omitempty"`
	Length  uint32          `json:"length,omitempty"`
	Ordered bool            `json:"ordered,omitempty"`
	Elem    *ResolvedType   `json:"elem,omitempty"`
	Fields  []ResolvedField `json:"fields,omitempty"`
	Members []*ResolvedType `json:"members,omitempty"`
	// Variants of an enum. Variants without a value have a null type.
	Variants []ResolvedField `json:"variants,omitempty"`
}

func (t *ResolvedType) named(name string) *ResolvedType {
	if t.Name == name {
		return t
	}
	clone := *t
	clone.Name = name
	return &clone
}

// Signature renders the structure of the type, ignoring names.
func (t *ResolvedType) Signature() string {
	var b strings.Builder
	t.writeSignature(&b)
	return b.String()
}

func (t *ResolvedType) writeSignature(b *strings.Builder) {
	switch t.Kind {
	case KindBool:
		b.WriteString("bool")
	case KindNumeric:
		if t.Signed {
			b.WriteByte('i')
		} else {
			b.WriteByte('u')
		}
		b.WriteString(strconv.Itoa(int(t.Bits)))
	case KindText:
		b.WriteString("Text")
	case KindNull:
		b.WriteString("()")
	case KindFixedBytes:
		b.WriteString("[u8; ")
		b.WriteString(strconv.FormatUint(uint64(t.Length), 10))
		b.WriteByte(']')
	case KindStruct:
		b.WriteByte('{')
		for i, field := range t.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(field.Name)
			b.WriteString(": ")
			field.Type.writeSignature(b)
		}
		b.WriteByte('}')
	case KindCollection:
		if t.Ordered {
			b.WriteString("Vec<")
		} else {
			b.WriteString("Set<")
		}
		t.Elem.writeSignature(b)
		b.WriteByte('>')
	case KindOption:
		b.WriteString("Option<")
		t.Elem.writeSignature(b)
		b.WriteByte('>')
	case KindCompact:
		b.WriteString("Compact<")
		t.Elem.writeSignature(b)
		b.WriteByte('>')
	case KindTuple:
		b.WriteByte('(')
		for i, member := range t.Members {
			if i > 0 {
				b.WriteString(", ")
			}
			member.writeSignature(b)
		}
		b.WriteByte(')')
	case KindArray:
		b.WriteByte('[')
		t.Elem.writeSignature(b)
		b.WriteString("; ")
		b.WriteString(strconv.FormatUint(uint64(t.Length), 10))
		b.WriteByte(']')
	case KindEnum:
		b.WriteString("enum {")
		for i, variant := range t.Variants {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(variant.Name)
			if variant.Type != nil {
				b.WriteByte('(')
				variant.Type.writeSignature(b)
				b.WriteByte(')')
			}
		}
		b.WriteByte('}')
	}
}

// Tree renders the resolved type as an indented tree.
func (t *ResolvedType) Tree() string {
	root := gotree.New(t.label(""))
	t.addChildren(root)
	return root.Print()
}

func (t *ResolvedType) label(prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	if t.Name != "" {
		b.WriteString(t.Name)
		b.WriteString(" ")
	}

	switch t.Kind {
	case KindNumeric, KindFixedBytes, KindBool, KindText, KindNull:
		b.WriteString(t.Signature())
	case KindCollection:
		if t.Ordered {
			b.WriteString("sequence")
		} else {
			b.WriteString("set")
		}
	case KindArray:
		b.WriteString("array of ")
		b.WriteString(strconv.FormatUint(uint64(t.Length), 10))
	default:
		b.WriteString(t.Kind.String())
	}
	return b.String()
}

func (t *ResolvedType) addChildren(tree gotree.Tree) {
	addChild := func(prefix string, child *ResolvedType) {
		if child == nil {
			tree.Add(prefix + "()")
			return
		}
		subtree := tree.Add(child.label(prefix))
		child.addChildren(subtree)
	}

	switch t.Kind {
	case KindStruct:
		for _, field := range t.Fields {
			addChild(field.Name+": ", field.Type)
		}
	case KindEnum:
		for _, variant := range t.Variants {
			addChild(variant.Name+": ", variant.Type)
		}
	case KindTuple:
		for i, member := range t.Members {
			addChild(strconv.Itoa(i)+": ", member)
		}
	case KindCollection, KindOption, KindArray, KindCompact:
		addChild("", t.Elem)
	}
}
