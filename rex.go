// Package rex provides a Perl/ECMAScript-flavored regular-expression
// engine built on a recursive-descent parser, a flat instruction compiler,
// and a Thompson/Pike virtual machine.
//
// rex is not a stdlib regexp replacement: it keeps submatch priority
// (leftmost-first, the same rule PCRE and JavaScript use) and, unlike
// stdlib regexp, supports backreferences — at the cost of linear-time
// guarantees on patterns that use them.
//
// Basic usage:
//
//	re, err := rex.Compile(`(?<year>\d{4})-(?<month>\d{2})-(?<day>\d{2})`, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result := re.Execute("2024-03-15")
//	if result.Matched() {
//	    fmt.Println(result.Groups()["year"]) // "2024"
//	}
package rex

import (
	"github.com/coregx/rex/prefilter"
	"github.com/coregx/rex/syntax"
	"github.com/coregx/rex/vm"
)

// Regexp is a compiled pattern. It is immutable once returned by Compile,
// and safe to use concurrently from multiple goroutines: every Execute
// call allocates only call-local scratch.
type Regexp struct {
	pattern   string
	program   *vm.Program
	names     map[string]int
	prefilter *prefilter.Matcher
}

// Compile compiles pattern into a Regexp. flags is any combination of 'm'
// (multiline), 's' (singleline), 'i' (ignore_case). Returns a *syntax.Error
// on malformed input; compile never panics.
//
// Example:
//
//	re, err := rex.Compile(`a(bc|de)f`, "")
func Compile(pattern string, flags string) (*Regexp, error) {
	res, err := syntax.Parse(pattern, flags)
	if err != nil {
		return nil, err
	}

	program := vm.Compile(res.Root, res.CaptureCount, res.HasBackreference)
	return &Regexp{
		pattern:   pattern,
		program:   program,
		names:     res.NameToIndex,
		prefilter: prefilter.Build(res.Root),
	}, nil
}

// MustCompile is like Compile but panics on error. Intended for patterns
// known to be valid at init time.
//
// Example:
//
//	var dateRe = rex.MustCompile(`(?<year>\d{4})-(?<month>\d{2})-(?<day>\d{2})`, "")
func MustCompile(pattern string, flags string) *Regexp {
	re, err := Compile(pattern, flags)
	if err != nil {
		panic("rex: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// GroupCount returns the total number of capture groups, including the
// implicit group 0 for the whole match.
func (re *Regexp) GroupCount() int {
	return re.program.NumCaptures
}

// GroupNames returns the names of every named capture group, in the order
// their groups open in the pattern.
func (re *Regexp) GroupNames() []string {
	byIndex := make([]string, re.program.NumCaptures)
	for name, idx := range re.names {
		byIndex[idx] = name
	}
	names := make([]string, 0, len(re.names))
	for _, name := range byIndex {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// GroupByName returns the capture index for name, and false if no group by
// that name exists.
func (re *Regexp) GroupByName(name string) (int, bool) {
	idx, ok := re.names[name]
	return idx, ok
}

// Execute runs the regexp against input and always returns a non-nil
// result; call Matched to distinguish success from failure.
func (re *Regexp) Execute(input string) *MatchResult {
	if re.prefilter != nil && !re.prefilter.PossibleMatch([]byte(input)) {
		return &MatchResult{input: input, names: re.names}
	}

	caps, ok := vm.Exec(re.program, input)
	if !ok {
		return &MatchResult{input: input, names: re.names}
	}
	return &MatchResult{input: input, captures: caps, names: re.names}
}

// Match is a convenience wrapper over Execute: it returns (result, true)
// on a match and (nil, false) otherwise.
func (re *Regexp) Match(input string) (*MatchResult, bool) {
	result := re.Execute(input)
	if !result.Matched() {
		return nil, false
	}
	return result, true
}

// MatchResult is an immutable view over one Execute call's outcome.
type MatchResult struct {
	input    string
	captures []int // nil if no match; otherwise length 2*GroupCount()
	names    map[string]int
}

// Matched reports whether the regexp found a match.
func (r *MatchResult) Matched() bool {
	return r.captures != nil
}

// Get returns the substring captured by group i, and false if i is out of
// range or the group did not participate in the match.
func (r *MatchResult) Get(i int) (string, bool) {
	if r.captures == nil || 2*i+1 >= len(r.captures) || i < 0 {
		return "", false
	}
	s, e := r.captures[2*i], r.captures[2*i+1]
	if s < 0 {
		return "", false
	}
	return r.input[s:e], true
}

// Results returns one entry per capture group (index 0 is the whole
// match); an entry is the empty string, false if that group did not
// participate in the match.
func (r *MatchResult) Results() []Submatch {
	if r.captures == nil {
		return nil
	}
	out := make([]Submatch, len(r.captures)/2)
	for i := range out {
		s, ok := r.Get(i)
		out[i] = Submatch{Text: s, Matched: ok}
	}
	return out
}

// Groups returns a mapping of named group → captured substring, including
// only names whose group actually captured on this match.
func (r *MatchResult) Groups() map[string]string {
	out := make(map[string]string)
	if r.captures == nil {
		return out
	}
	for name, idx := range r.names {
		if s, ok := r.Get(idx); ok {
			out[name] = s
		}
	}
	return out
}

// Before returns the portion of the input preceding the whole match, and
// After the portion following it. If there is no match, Before returns the
// entire input and After returns "".
func (r *MatchResult) Before() string {
	if r.captures == nil {
		return r.input
	}
	return r.input[:r.captures[0]]
}

// After returns the portion of the input following the whole match.
func (r *MatchResult) After() string {
	if r.captures == nil {
		return ""
	}
	return r.input[r.captures[1]:]
}

// Submatch is one entry of MatchResult.Results().
type Submatch struct {
	Text    string
	Matched bool
}
