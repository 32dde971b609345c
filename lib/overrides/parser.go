// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package overrides

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind uint8

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenNumber
	tokenPunct
)

type token struct {
	kind   tokenKind
	text   string
	offset int
}

func (t token) String() string {
	switch t.kind {
	case tokenEOF:
		return "end of input"
	default:
		return strconv.Quote(t.text)
	}
}

// parser is a recursive descent parser for the type expression grammar:
//
//	expr  = tuple | array | path
//	tuple = "(" [ expr { "," expr } [ "," ] ] ")"
//	array = "[" expr ";" number "]"
//	path  = ident [ "<" expr { "," expr } ">" ]
//	ident = name { "::" name }
type parser struct {
	input  string
	tokens []token
	pos    int
}

// ParseTypeExpr parses a textual type expression like `Option<TreeNode<AccountId>>`.
// Qualified names such as `T::AccountId` keep their last segment only.
func ParseTypeExpr(input string) (TypeExpr, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return TypeExpr{}, err
	}

	p := &parser{input: input, tokens: tokens}
	expr, err := p.parseExpr()
	if err != nil {
		return TypeExpr{}, err
	}

	if next := p.peek(); next.kind != tokenEOF {
		return TypeExpr{}, p.errorf(next, "unexpected %s after type", next)
	}
	return expr, nil
}

// MustParseTypeExpr is like ParseTypeExpr but panics on error.
// It is intended for static tables.
func MustParseTypeExpr(input string) TypeExpr {
	expr, err := ParseTypeExpr(input)
	if err != nil {
		panic(err)
	}
	return expr
}

func tokenize(input string) (tokens []token, err error) {
	runes := []rune(input)
	offset := 0
	for offset < len(runes) {
		r := runes[offset]
		switch {
		case unicode.IsSpace(r):
			offset++
		case r == '_' || unicode.IsLetter(r):
			start := offset
			for offset < len(runes) {
				r = runes[offset]
				if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
					offset++
					continue
				}
				if r == ':' && offset+1 < len(runes) && runes[offset+1] == ':' {
					offset += 2
					continue
				}
				break
			}
			text := string(runes[start:offset])
			if strings.HasSuffix(text, "::") {
				return nil, schemaError(ErrMalformedType, "",
					fmt.Sprintf("dangling path separator at offset %d in %q", start, input))
			}
			tokens = append(tokens, token{kind: tokenIdent, text: text, offset: start})
		case unicode.IsDigit(r):
			start := offset
			for offset < len(runes) && unicode.IsDigit(runes[offset]) {
				offset++
			}
			tokens = append(tokens, token{kind: tokenNumber, text: string(runes[start:offset]), offset: start})
		case strings.ContainsRune("<>()[],;", r):
			tokens = append(tokens, token{kind: tokenPunct, text: string(r), offset: offset})
			offset++
		default:
			return nil, schemaError(ErrMalformedType, "",
				fmt.Sprintf("unexpected character %q at offset %d in %q", r, offset, input))
		}
	}
	tokens = append(tokens, token{kind: tokenEOF, offset: len(runes)})
	return tokens, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokenEOF {
		p.pos++
	}
	return t
}

func (p *parser) isPunct(text string) bool {
	t := p.peek()
	return t.kind == tokenPunct && t.text == text
}

func (p *parser) expect(text string) error {
	t := p.next()
	if t.kind != tokenPunct || t.text != text {
		return p.errorf(t, "expected %q, found %s", text, t)
	}
	return nil
}

func (p *parser) errorf(t token, format string, args ...interface{}) error {
	detail := fmt.Sprintf(format, args...)
	return schemaError(ErrMalformedType, "",
		fmt.Sprintf("%s at offset %d in %q", detail, t.offset, p.input))
}

func (p *parser) parseExpr() (TypeExpr, error) {
	t := p.peek()
	switch {
	case t.kind == tokenPunct && t.text == "(":
		return p.parseTuple()
	case t.kind == tokenPunct && t.text == "[":
		return p.parseArray()
	case t.kind == tokenIdent:
		return p.parsePath()
	default:
		return TypeExpr{}, p.errorf(t, "expected type, found %s", t)
	}
}

func (p *parser) parseTuple() (TypeExpr, error) {
	_ = p.next() // (
	expr := TypeExpr{Kind: ExprTuple}
	for !p.isPunct(")") {
		member, err := p.parseExpr()
		if err != nil {
			return TypeExpr{}, err
		}
		expr.Args = append(expr.Args, member)

		if p.isPunct(",") {
			_ = p.next()
			continue
		}
		if !p.isPunct(")") {
			t := p.peek()
			return TypeExpr{}, p.errorf(t, "expected \",\" or \")\", found %s", t)
		}
	}
	_ = p.next() // )
	return expr, nil
}

func (p *parser) parseArray() (TypeExpr, error) {
	_ = p.next() // [
	elem, err := p.parseExpr()
	if err != nil {
		return TypeExpr{}, err
	}
	if err = p.expect(";"); err != nil {
		return TypeExpr{}, err
	}

	t := p.next()
	if t.kind != tokenNumber {
		return TypeExpr{}, p.errorf(t, "expected array length, found %s", t)
	}
	length, err := strconv.ParseUint(t.text, 10, 32)
	if err != nil {
		return TypeExpr{}, p.errorf(t, "array length %s out of range", t.text)
	}

	if err = p.expect("]"); err != nil {
		return TypeExpr{}, err
	}
	return TypeExpr{Kind: ExprArray, Args: []TypeExpr{elem}, Len: uint32(length)}, nil
}

func (p *parser) parsePath() (TypeExpr, error) {
	t := p.next()
	name := t.text
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}

	expr := Path(name)
	if !p.isPunct("<") {
		return expr, nil
	}
	_ = p.next() // <

	for {
		arg, err := p.parseExpr()
		if err != nil {
			return TypeExpr{}, err
		}
		expr.Args = append(expr.Args, arg)

		if p.isPunct(",") {
			_ = p.next()
			continue
		}
		if err = p.expect(">"); err != nil {
			return TypeExpr{}, err
		}
		return expr, nil
	}
}
