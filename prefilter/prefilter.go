// Package prefilter accelerates the VM's "scan anywhere in input" preamble
// (vm.Compile's Split/Char/Jump loop) for patterns that begin with a fixed
// set of literal strings. It is purely an optimization: the single-Pike-VM
// architecture always produces a correct answer without it, by scanning
// every input position. When a pattern's required literal prefix can be
// extracted, an Aho-Corasick automaton lets the facade skip straight past
// input that contains none of those literals at all.
package prefilter

import (
	"unicode/utf8"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/rex/syntax"
)

// Matcher wraps an Aho-Corasick automaton built from a pattern's mandatory
// literal prefixes (one per top-level alternation branch that has one).
type Matcher struct {
	auto *ahocorasick.Automaton
}

// Build extracts root's mandatory literal prefixes and compiles them into
// a Matcher. Returns nil if no prefix could be extracted (e.g. the pattern
// starts with a character class, assertion, or quantifier) — callers must
// treat a nil Matcher as "no acceleration available", not an error.
func Build(root *syntax.Expr) *Matcher {
	lits := extractPrefixes(root)
	if len(lits) == 0 {
		return nil
	}
	builder := ahocorasick.NewBuilder()
	for _, lit := range lits {
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &Matcher{auto: auto}
}

// PossibleMatch reports whether any of the pattern's required literal
// prefixes occurs anywhere in haystack. If it returns false, no full match
// is possible anywhere in haystack, since every full match must begin with
// one of those literals.
func (m *Matcher) PossibleMatch(haystack []byte) bool {
	if m == nil {
		return true
	}
	return m.auto.Find(haystack, 0) != nil
}

// extractPrefixes returns the set of literal byte strings every full match
// of e must begin with, or nil if no such fixed set exists.
func extractPrefixes(e *syntax.Expr) [][]byte {
	switch e.Op {
	case syntax.OpConcat:
		lit := literalPrefixOf(e)
		if len(lit) == 0 {
			return nil
		}
		return [][]byte{lit}
	case syntax.OpAlternate:
		left := extractPrefixes(e.Sub[0])
		right := extractPrefixes(e.Sub[1])
		if left == nil || right == nil {
			return nil
		}
		return append(left, right...)
	case syntax.OpCapture:
		return extractPrefixes(e.Sub[0])
	default:
		r, ok := literalRune(e)
		if !ok {
			return nil
		}
		return [][]byte{encodeRune(r)}
	}
}

// literalPrefixOf walks the leading literal run of a Concat node, stopping
// at the first child that is not a single-code-point positive char class.
func literalPrefixOf(concat *syntax.Expr) []byte {
	var buf []byte
	for _, sub := range concat.Sub {
		r, ok := literalRune(sub)
		if !ok {
			break
		}
		buf = append(buf, encodeRune(r)...)
	}
	return buf
}

func literalRune(e *syntax.Expr) (rune, bool) {
	if e.Op != syntax.OpCharClass || e.Negated {
		return 0, false
	}
	if len(e.Ranges) != 2 || e.Ranges[0] != e.Ranges[1] {
		return 0, false
	}
	return e.Ranges[0], true
}

func encodeRune(r rune) []byte {
	buf := make([]byte, utf8.UTFMax)
	n := utf8.EncodeRune(buf, r)
	return buf[:n]
}
