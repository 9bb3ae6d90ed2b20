// Package vm implements the compiler and Thompson/Pike virtual machine: an
// AST from package syntax goes in, a flat instruction program comes out,
// and that program executes against a decoded input to produce a capture
// array.
package vm

import "github.com/coregx/rex/charclass"

// Op identifies an instruction's kind: Char, Match, Jump, Split, Save,
// Assert, Backref.
type Op uint8

const (
	OpChar Op = iota
	OpMatch
	OpJump
	OpSplit
	OpSave
	OpAssert
	OpBackref
)

// AssertKind identifies which zero-width predicate an Assertion instruction
// checks.
type AssertKind uint8

const (
	AssertBeginText AssertKind = iota
	AssertEndText
	AssertBeginLine
	AssertEndLine
	AssertWordBoundary
	AssertNoWordBoundary
)

// Inst is one flat program element. Only the fields relevant to Op are
// meaningful:
//
//   - OpChar: Ranges.
//   - OpMatch: none.
//   - OpJump: X is the target pc.
//   - OpSplit: X is the primary (higher-priority) target, Y the secondary.
//   - OpSave: X is the capture slot (2*index or 2*index+1).
//   - OpAssert: Assert.
//   - OpBackref: X is the capture group index.
type Inst struct {
	Op     Op
	Ranges charclass.Ranges
	X, Y   int
	Assert AssertKind
}

// Program is a compiled, immutable instruction sequence ready for
// execution. NumCaptures counts capture groups including implicit group 0;
// the capture array has length 2*NumCaptures. HasBackreference gates which
// execution strategy Exec uses.
type Program struct {
	Insts            []Inst
	NumCaptures      int
	HasBackreference bool
}
