// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package overrides

import (
	"strconv"
	"strings"
)

// ExprKind is the kind of a parsed type expression.
type ExprKind uint8

const (
	// ExprPath is a type name with optional generic arguments, e.g. Vec<u8>.
	ExprPath ExprKind = iota
	// ExprTuple is a parenthesised member list, e.g. (AccountId, u32).
	ExprTuple
	// ExprArray is a fixed length array, e.g. [u8; 20].
	ExprArray
)

// TypeExpr is a parsed type expression such as `Vec<(AccountId, AuthIndex)>`.
// Args holds the generic arguments of a path, the members of a tuple,
// or the single element of an array.
type TypeExpr struct {
	Kind ExprKind
	Name string
	Args []TypeExpr
	Len  uint32
}

// Path returns a bare type name expression.
func Path(name string, args ...TypeExpr) TypeExpr {
	return TypeExpr{Kind: ExprPath, Name: name, Args: args}
}

// IsBare returns true if the expression is a type name without arguments.
func (e TypeExpr) IsBare() bool {
	return e.Kind == ExprPath && len(e.Args) == 0
}

func (e TypeExpr) String() string {
	var b strings.Builder
	e.write(&b)
	return b.String()
}

func (e TypeExpr) write(b *strings.Builder) {
	switch e.Kind {
	case ExprPath:
		b.WriteString(e.Name)
		if len(e.Args) == 0 {
			return
		}
		b.WriteByte('<')
		writeList(b, e.Args)
		b.WriteByte('>')
	case ExprTuple:
		b.WriteByte('(')
		writeList(b, e.Args)
		b.WriteByte(')')
	case ExprArray:
		b.WriteByte('[')
		e.Args[0].write(b)
		b.WriteString("; ")
		b.WriteString(strconv.FormatUint(uint64(e.Len), 10))
		b.WriteByte(']')
	}
}

func writeList(b *strings.Builder, exprs []TypeExpr) {
	for i, expr := range exprs {
		if i > 0 {
			b.WriteString(", ")
		}
		expr.write(b)
	}
}
