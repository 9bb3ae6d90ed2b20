// Package syntax implements the AST and recursive-descent parser: pattern
// text goes in, an *Expr tree plus a capture map comes out.
//
// The AST follows the one-struct-many-ops shape regexp/syntax.Regexp,
// quasilyte/regex/syntax.Expr, and isgasho-regex's syntax.Expr all use:
// a single node type tagged by Op, with only the fields that Op defines
// populated. That shape is what lets the compiler (package vm) walk the
// tree with one big switch instead of a type-switch over a dozen concrete
// node types.
package syntax

import "github.com/coregx/rex/charclass"

// Op identifies which regex construct an *Expr node represents.
type Op uint8

const (
	// OpEmptyMatch matches the empty string. Sub, Ranges etc. unused.
	OpEmptyMatch Op = iota

	// OpCharClass matches one code point. Ranges holds the inclusive
	// range list; Negated, if true, means "any code point not in Ranges".
	// Dot, \d \w \s, \p{...}, literal characters, and [...] classes all
	// collapse to this node by the time the parser returns.
	OpCharClass

	// OpAssertBeginText, OpAssertEndText, OpAssertBeginLine,
	// OpAssertEndLine, OpWordBoundary, OpNoWordBoundary are all
	// zero-width assertions; which one is which Op.
	OpAssertBeginText
	OpAssertEndText
	OpAssertBeginLine
	OpAssertEndLine
	OpWordBoundary
	OpNoWordBoundary

	// OpCapture wraps Sub[0] in capture group Index (≥1). Name is ""
	// for an anonymous group.
	OpCapture

	// OpStar, OpPlus, OpQuest are `x*`, `x+`, `x?`. Sub[0] is the
	// repeated expression; Greedy is false for the lazy (`x*?` etc) form.
	OpStar
	OpPlus
	OpQuest

	// OpRepeat is `x{min,max}`. Sub[0] is the repeated expression.
	// Max == -1 means an open upper bound (`x{min,}`).
	OpRepeat

	// OpConcat concatenates Sub in order. A 0-length Sub is the empty
	// concatenation (matches the empty string, same as OpEmptyMatch).
	OpConcat

	// OpAlternate tries Sub[0] before Sub[1] (leftmost-first priority).
	OpAlternate

	// OpBackreference matches the substring currently captured by group
	// Index.
	OpBackreference
)

// Expr is a single AST node. Only the fields the Op comment above
// documents are meaningful for a given Op; the rest are zero.
type Expr struct {
	Op Op

	// Sub holds child expressions: len 1 for Capture/Star/Plus/Quest/Repeat,
	// len 2 for Alternate (Sub[0] has priority), any length for Concat.
	Sub []*Expr

	// Ranges and Negated describe an OpCharClass.
	Ranges  charclass.Ranges
	Negated bool

	// Greedy describes OpStar/OpPlus/OpQuest/OpRepeat.
	Greedy bool

	// Min and Max describe OpRepeat (Max == -1 means unbounded).
	Min, Max int

	// Index and Name describe OpCapture (Name "" means anonymous) and
	// OpBackreference (Name unused).
	Index int
	Name  string
}

// NewEmpty returns the empty-match node.
func NewEmpty() *Expr { return &Expr{Op: OpEmptyMatch} }

// NewCharClass returns a character-class node over ranges (already
// simplified by the caller).
func NewCharClass(ranges charclass.Ranges, negated bool) *Expr {
	return &Expr{Op: OpCharClass, Ranges: ranges, Negated: negated}
}

// NewConcat flattens nested concatenations and drops OpEmptyMatch members.
// A single remaining child is returned unwrapped.
func NewConcat(parts ...*Expr) *Expr {
	flat := make([]*Expr, 0, len(parts))
	for _, p := range parts {
		if p == nil || p.Op == OpEmptyMatch {
			continue
		}
		if p.Op == OpConcat {
			flat = append(flat, p.Sub...)
			continue
		}
		flat = append(flat, p)
	}
	switch len(flat) {
	case 0:
		return NewEmpty()
	case 1:
		return flat[0]
	default:
		return &Expr{Op: OpConcat, Sub: flat}
	}
}

// NewAlternate returns left|right with left given priority.
func NewAlternate(left, right *Expr) *Expr {
	return &Expr{Op: OpAlternate, Sub: []*Expr{left, right}}
}

// ParseResult is what Parse returns: the AST plus the capture bookkeeping
// a compiler needs to allocate Save slots and report named groups.
type ParseResult struct {
	Root             *Expr
	CaptureCount     int // includes implicit group 0
	NameToIndex      map[string]int
	HasBackreference bool
}
