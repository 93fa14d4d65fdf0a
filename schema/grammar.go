package schema

import (
	"fmt"
	"strings"
)

// Expr is a parsed type expression: a leaf name, or one of the two postfix
// operators (vector/optional) wrapping an inner expression.
type Expr interface {
	exprString() string
}

// Leaf references a type by name: a primitive, custom type, struct, or
// alias, resolved later by the Schema Compiler.
type Leaf struct {
	Name string
}

// OptionalExpr is the trailing-"?" operator: optional of Inner.
type OptionalExpr struct {
	Inner Expr
}

// VectorExpr is either the trailing-"[]" operator or the explicit
// "vector[Inner]" form: a vector of Inner.
type VectorExpr struct {
	Inner Expr
}

// SetExpr is the explicit "set[Inner]" form: a duplicate-rejecting vector
// of Inner. Not named in the distilled grammar (§3 lists only NAME, NAME?,
// NAME[], vector[NAME]) but a natural extension, since §4.1 names `set`
// as a Type Factory primitive with no other way to reach it from a schema
// document.
type SetExpr struct {
	Inner Expr
}

func (Leaf) exprString() string         { return "Leaf" }
func (OptionalExpr) exprString() string { return "OptionalExpr" }
func (VectorExpr) exprString() string   { return "VectorExpr" }
func (SetExpr) exprString() string      { return "SetExpr" }

// ParseTypeExpr parses one field/alias/base type expression string into
// an Expr tree. Postfix operators nest left-to-right as written, so
// "string[]?" parses as optional(vector(string)): the vector applies to
// the bare name first, then the trailing "?" wraps the whole thing.
func ParseTypeExpr(s string) (Expr, error) {
	original := s
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty type expression")
	}

	expr, rest, err := parseAtom(s)
	if err != nil {
		return nil, err
	}
	for rest != "" {
		switch {
		case strings.HasPrefix(rest, "?"):
			expr = OptionalExpr{Inner: expr}
			rest = rest[1:]
		case strings.HasPrefix(rest, "[]"):
			expr = VectorExpr{Inner: expr}
			rest = rest[2:]
		default:
			return nil, fmt.Errorf("unexpected trailing characters %q in type expression %q", rest, original)
		}
	}
	return expr, nil
}

// parseAtom parses the leading atom of a type expression — either the
// explicit "vector[Inner]"/"set[Inner]" form, or a bare NAME — and returns
// the unconsumed suffix (postfix operators for the caller to apply).
func parseAtom(s string) (Expr, string, error) {
	if inner, rest, ok, err := parseBracketForm(s, "vector["); err != nil || ok {
		if err != nil {
			return nil, "", err
		}
		innerExpr, err := ParseTypeExpr(inner)
		if err != nil {
			return nil, "", err
		}
		return VectorExpr{Inner: innerExpr}, rest, nil
	}
	if inner, rest, ok, err := parseBracketForm(s, "set["); err != nil || ok {
		if err != nil {
			return nil, "", err
		}
		innerExpr, err := ParseTypeExpr(inner)
		if err != nil {
			return nil, "", err
		}
		return SetExpr{Inner: innerExpr}, rest, nil
	}

	i := 0
	for i < len(s) && s[i] != '?' && s[i] != '[' {
		i++
	}
	name := s[:i]
	if name == "" {
		return nil, "", fmt.Errorf("expected a type name in %q", s)
	}
	return Leaf{Name: name}, s[i:], nil
}

// parseBracketForm recognizes a "<prefix>...]" explicit form, honoring
// nested brackets, and returns the bracketed content, the unconsumed
// suffix after the closing bracket, and whether the prefix matched at all.
func parseBracketForm(s, prefix string) (inner, rest string, ok bool, err error) {
	if !strings.HasPrefix(s, prefix) {
		return "", "", false, nil
	}
	depth := 0
	for i := len(prefix); i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			if depth == 0 {
				return s[len(prefix):i], s[i+1:], true, nil
			}
			depth--
		}
	}
	return "", "", true, fmt.Errorf("unterminated %q... in %q", prefix, s)
}
