// Package timelock implements the deterministic contract-call encoder, the
// operation identifier hasher and the argument coercion rules used by the
// timelock admin API. The byte layout produced here must match what the
// on-chain TimelockController computes, bit for bit.
package timelock

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var (
	uintAliasRe = regexp.MustCompile(`\buint\b`)
	intAliasRe  = regexp.MustCompile(`\bint\b`)
)

// CanonicalType expands the bare uint/int aliases to their full 256-bit names.
// Only whole words are replaced, so uint8 or uint256[] pass through unchanged.
func CanonicalType(t string) string {
	t2 := uintAliasRe.ReplaceAllString(t, "uint256")
	return intAliasRe.ReplaceAllString(t2, "int256")
}

// ParseSignature splits a human-readable function signature of the form
// name(type1,type2,...) into its name and the ordered parameter type strings.
// Commas inside nested tuple types are not treated as separators.
func ParseSignature(signature string) (string, []string, error) {
	idx := strings.Index(signature, "(")
	if idx < 0 || !strings.HasSuffix(signature, ")") {
		return "", nil, errors.Wrapf(ErrMalformedSignature, "%q", signature)
	}

	name := strings.TrimSpace(signature[:idx])
	typesRaw := strings.TrimSpace(signature[idx+1 : len(signature)-1])
	if typesRaw == "" {
		return name, []string{}, nil
	}

	types, err := splitTopLevel(typesRaw)
	if err != nil {
		return "", nil, errors.Wrapf(err, "%q", signature)
	}

	return name, types, nil
}

// splitTopLevel splits a comma separated type list while tracking parenthesis
// nesting, so that a tuple's internal commas stay part of its type string.
func splitTopLevel(raw string) ([]string, error) {
	parts := []string{}
	var buf strings.Builder
	depth := 0

	for _, ch := range raw {
		if ch == ',' && depth == 0 {
			if s := strings.TrimSpace(buf.String()); s != "" {
				parts = append(parts, s)
			}
			buf.Reset()
			continue
		}
		buf.WriteRune(ch)
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, errors.Wrap(ErrMalformedSignature, "unbalanced parentheses")
			}
		}
	}
	if depth != 0 {
		return nil, errors.Wrap(ErrMalformedSignature, "unbalanced parentheses")
	}
	if s := strings.TrimSpace(buf.String()); s != "" {
		parts = append(parts, s)
	}

	return parts, nil
}

type typeKind int

const (
	kindElementary typeKind = iota
	kindArray
	kindTuple
)

// typeDesc is a parsed type descriptor. Coercion and ABI type construction
// both dispatch on its kind instead of re-matching the raw string.
type typeDesc struct {
	kind       typeKind
	raw        string
	elem       *typeDesc   // array element, kindArray only
	components []*typeDesc // tuple components, kindTuple only
}

func parseTypeDesc(s string) (*typeDesc, error) {
	s = strings.TrimSpace(s)

	if strings.HasSuffix(s, "[]") {
		elem, err := parseTypeDesc(strings.TrimSuffix(s, "[]"))
		if err != nil {
			return nil, err
		}
		return &typeDesc{kind: kindArray, raw: s, elem: elem}, nil
	}

	if strings.HasPrefix(s, "(") || strings.HasPrefix(s, "tuple") {
		inner := s
		if strings.HasPrefix(s, "tuple") {
			idx := strings.Index(s, "(")
			if idx < 0 {
				return nil, errors.Wrapf(ErrTypeMismatch, "invalid tuple type %q", s)
			}
			inner = s[idx:]
		}
		if !strings.HasPrefix(inner, "(") || !strings.HasSuffix(inner, ")") {
			return nil, errors.Wrapf(ErrTypeMismatch, "invalid tuple type %q", s)
		}

		parts, err := splitTopLevel(inner[1 : len(inner)-1])
		if err != nil {
			return nil, errors.Wrapf(err, "invalid tuple type %q", s)
		}

		components := make([]*typeDesc, 0, len(parts))
		for _, p := range parts {
			c, err := parseTypeDesc(p)
			if err != nil {
				return nil, err
			}
			components = append(components, c)
		}

		return &typeDesc{kind: kindTuple, raw: s, components: components}, nil
	}

	return &typeDesc{kind: kindElementary, raw: s}, nil
}
