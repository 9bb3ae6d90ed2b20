package syntax

import "fmt"

// ErrorKind identifies why Parse rejected a pattern. Compile never raises
// anything outside this fixed set, and execute never raises at all.
type ErrorKind int

const (
	// InternalError marks a parser invariant violation; reaching it is a
	// bug in the parser itself, not a malformed pattern.
	InternalError ErrorKind = iota

	// InvalidCharClass covers bad range endpoints, an unclosed \p{...},
	// or an unknown property name.
	InvalidCharClass

	// InvalidEscape covers an unknown escape, a bad \u escape, a bad
	// \k<...>, an out-of-scope or undefined backreference, or \c.
	InvalidEscape

	// InvalidNamedCapture covers an empty name, a bad first character,
	// an illegal character, a duplicate name, or a missing '>'.
	InvalidNamedCapture

	// InvalidRepeatOp covers a malformed `{...}` (e.g. `{n,m,x}`).
	InvalidRepeatOp

	// InvalidRepeatSize covers `{n,m}` where m < n.
	InvalidRepeatSize

	// MissingBracket covers a `[` that is never closed.
	MissingBracket

	// MissingParenthesis covers a `(` that is never closed.
	MissingParenthesis

	// MissingRepeatArgument covers `{}` with no number, or a repetition
	// operator with no preceding atom to repeat.
	MissingRepeatArgument

	// TrailingBackslash covers a `\` at the end of the pattern.
	TrailingBackslash

	// UnexpectedParenthesis covers a stray `)`.
	UnexpectedParenthesis
)

// String names an ErrorKind for diagnostics.
func (k ErrorKind) String() string {
	switch k {
	case InternalError:
		return "InternalError"
	case InvalidCharClass:
		return "InvalidCharClass"
	case InvalidEscape:
		return "InvalidEscape"
	case InvalidNamedCapture:
		return "InvalidNamedCapture"
	case InvalidRepeatOp:
		return "InvalidRepeatOp"
	case InvalidRepeatSize:
		return "InvalidRepeatSize"
	case MissingBracket:
		return "MissingBracket"
	case MissingParenthesis:
		return "MissingParenthesis"
	case MissingRepeatArgument:
		return "MissingRepeatArgument"
	case TrailingBackslash:
		return "TrailingBackslash"
	case UnexpectedParenthesis:
		return "UnexpectedParenthesis"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is what Parse returns on failure. Fragment is the unconsumed tail
// of the pattern at the point of failure, carried as a diagnostic aid.
type Error struct {
	Kind     ErrorKind
	Fragment string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("regex syntax error: %s", e.Kind)
	}
	return fmt.Sprintf("regex syntax error: %s near %q", e.Kind, e.Fragment)
}
