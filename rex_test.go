package rex

import (
	"testing"

	"github.com/coregx/rex/syntax"
)

func TestCompileAndExecuteCaptureGroups(t *testing.T) {
	re, err := Compile("a(bc|de)f", "")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	result := re.Execute("xxabcf")
	if !result.Matched() {
		t.Fatalf("expected a match")
	}
	whole, _ := result.Get(0)
	group1, _ := result.Get(1)
	if whole != "abcf" || group1 != "bc" {
		t.Fatalf("expected whole=abcf group1=bc, got whole=%q group1=%q", whole, group1)
	}
}

func TestNamedCaptureGroups(t *testing.T) {
	re := MustCompile(`(?<year>\d{4})-(?<month>\d{2})-(?<day>\d{2})`, "")
	result := re.Execute("2024-03-15")
	groups := result.Groups()
	want := map[string]string{"year": "2024", "month": "03", "day": "15"}
	for name, wantVal := range want {
		if got := groups[name]; got != wantVal {
			t.Errorf("group %q = %q, want %q", name, got, wantVal)
		}
	}
}

func TestAnchoredNoMatch(t *testing.T) {
	re := MustCompile("^hello$", "")
	result := re.Execute("hello world")
	if result.Matched() {
		t.Fatalf("expected no match")
	}
	if result.Before() != "hello world" || result.After() != "" {
		t.Fatalf("expected Before=input After=empty on no-match, got %q / %q", result.Before(), result.After())
	}
}

func TestMultilineAnchors(t *testing.T) {
	re := MustCompile("^hello$", "m")
	result := re.Execute("hi\nhello\nok")
	if !result.Matched() {
		t.Fatalf("expected a match")
	}
	whole, _ := result.Get(0)
	if whole != "hello" {
		t.Fatalf("expected whole=hello, got %q", whole)
	}
}

func TestBackreferenceMatch(t *testing.T) {
	re := MustCompile(`(.)(.)\2\1`, "")
	result := re.Execute("abba")
	if !result.Matched() {
		t.Fatalf("expected a match")
	}
	g1, _ := result.Get(1)
	g2, _ := result.Get(2)
	if g1 != "a" || g2 != "b" {
		t.Fatalf("expected group1=a group2=b, got %q %q", g1, g2)
	}
}

func TestIgnoreCaseMatch(t *testing.T) {
	re := MustCompile("hello", "i")
	result := re.Execute("HeLLo")
	whole, _ := result.Get(0)
	if whole != "HeLLo" {
		t.Fatalf("expected HeLLo, got %q", whole)
	}
}

func TestUnicodePropertyMatch(t *testing.T) {
	re := MustCompile(`\p{Letter}+`, "")
	result := re.Execute("Hello 世界")
	whole, _ := result.Get(0)
	if whole != "Hello" {
		t.Fatalf("expected Hello, got %q", whole)
	}
}

func TestCompileErrors(t *testing.T) {
	cases := []struct {
		pattern string
		kind    string
	}{
		{"a(b", "MissingParenthesis"},
		{"a{5,2}", "InvalidRepeatSize"},
	}
	for _, c := range cases {
		_, err := Compile(c.pattern, "")
		if err == nil {
			t.Errorf("Compile(%q): expected error", c.pattern)
			continue
		}
		se, ok := err.(*syntax.Error)
		if !ok || se.Kind.String() != c.kind {
			t.Errorf("Compile(%q): expected %s, got %v", c.pattern, c.kind, err)
		}
	}
}

func TestMatchConvenience(t *testing.T) {
	re := MustCompile(`\d+`, "")
	if _, ok := re.Match("no digits here"); ok {
		t.Fatalf("expected no match")
	}
	result, ok := re.Match("has 42 in it")
	if !ok {
		t.Fatalf("expected a match")
	}
	whole, _ := result.Get(0)
	if whole != "42" {
		t.Fatalf("expected 42, got %q", whole)
	}
}

func TestGroupCountAndNames(t *testing.T) {
	re := MustCompile(`(?<a>x)(y)(?<b>z)`, "")
	if re.GroupCount() != 4 {
		t.Fatalf("expected GroupCount 4, got %d", re.GroupCount())
	}
	names := re.GroupNames()
	if len(names) != 2 {
		t.Fatalf("expected 2 named groups, got %d: %v", len(names), names)
	}
	idx, ok := re.GroupByName("b")
	if !ok || idx != 3 {
		t.Fatalf("expected group b at index 3, got %d ok=%v", idx, ok)
	}
}

func TestResultsSliceLength(t *testing.T) {
	re := MustCompile(`a(b)(c)?`, "")
	result := re.Execute("ab")
	results := result.Results()
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Matched || results[0].Text != "ab" {
		t.Fatalf("expected whole match 'ab', got %+v", results[0])
	}
	if !results[1].Matched || results[1].Text != "b" {
		t.Fatalf("expected group1 'b', got %+v", results[1])
	}
	if results[2].Matched {
		t.Fatalf("expected group2 unmatched, got %+v", results[2])
	}
}
