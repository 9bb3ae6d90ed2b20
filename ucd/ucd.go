// Package ucd exposes Unicode data as a read-only, pre-built collaborator:
// general-category ranges, property-name aliases, and a simple
// case-folding orbit walker.
//
// Go's standard library already ships exactly this data in the shapes a
// property-aware character-class lookup needs (unicode.Categories is
// canonical-name → *RangeTable, unicode.SimpleFold is the orbit-iteration
// primitive), so this package is a thin adapter rather than a
// reimplementation — matching how regexp/syntax itself delegates Unicode
// semantics to the same standard package.
package ucd

import (
	"fmt"
	"unicode"

	"github.com/coregx/rex/charclass"
)

// MinFold and MaxFold bound the interval CaseFoldExpand operates over.
// The window spans every code point, so CaseFoldExpand looks up the orbit
// of each code point in a class, one unicode.SimpleFold walk per code point.
const (
	MinFold = 0
	MaxFold = unicode.MaxRune
)

// FoldOrbit steps r to the next code point in its simple case-folding
// orbit. It is unicode.SimpleFold, named to match charclass.FoldOrbit.
func FoldOrbit(r rune) rune {
	return unicode.SimpleFold(r)
}

// categoryAliases maps accepted \p{Name} spellings to the canonical name
// unicode.Categories (or unicode.Scripts, for script names) is keyed by.
// Single- and double-letter Unicode general category abbreviations are
// already their own canonical name and need no entry here.
var categoryAliases = map[string]string{
	"Letter":          "L",
	"Uppercase_Letter": "Lu",
	"Lowercase_Letter": "Ll",
	"Titlecase_Letter": "Lt",
	"Modifier_Letter":  "Lm",
	"Other_Letter":     "Lo",
	"Mark":             "M",
	"Nonspacing_Mark":  "Mn",
	"Spacing_Mark":     "Mc",
	"Enclosing_Mark":   "Me",
	"Number":           "N",
	"Decimal_Number":   "Nd",
	"Letter_Number":    "Nl",
	"Other_Number":     "No",
	"Punctuation":      "P",
	"Connector_Punctuation": "Pc",
	"Dash_Punctuation":      "Pd",
	"Open_Punctuation":      "Ps",
	"Close_Punctuation":     "Pe",
	"Initial_Punctuation":   "Pi",
	"Final_Punctuation":     "Pf",
	"Other_Punctuation":     "Po",
	"Symbol":           "S",
	"Math_Symbol":      "Sm",
	"Currency_Symbol":  "Sc",
	"Modifier_Symbol":  "Sk",
	"Other_Symbol":     "So",
	"Separator":        "Z",
	"Space_Separator":  "Zs",
	"Line_Separator":   "Zl",
	"Paragraph_Separator": "Zp",
	"Other":            "C",
	"Control":          "Cc",
	"Format":           "Cf",
	"Surrogate":        "Cs",
	"Private_Use":      "Co",
	"Unassigned":       "Cn",
	"Cased_Letter":     "LC",
}

// CanonicalCategory resolves a \p{Name} spelling (an alias, a canonical
// abbreviation, or a script name) to the name used to index LookupCategory.
// The second return value is false if name is not recognized at all.
func CanonicalCategory(name string) (string, bool) {
	if canon, ok := categoryAliases[name]; ok {
		return canon, true
	}
	if _, ok := unicode.Categories[name]; ok {
		return name, true
	}
	if _, ok := unicode.Scripts[name]; ok {
		return name, true
	}
	return "", false
}

// LookupCategory returns the inclusive ranges for a canonical general
// category or script name (as resolved by CanonicalCategory), flattened to
// charclass.Ranges. Returns an error if name is unknown.
func LookupCategory(name string) (charclass.Ranges, error) {
	canon, ok := CanonicalCategory(name)
	if !ok {
		return nil, fmt.Errorf("ucd: unknown Unicode property %q", name)
	}

	var table *unicode.RangeTable
	if t, ok := unicode.Categories[canon]; ok {
		table = t
	} else if t, ok := unicode.Scripts[canon]; ok {
		table = t
	} else {
		return nil, fmt.Errorf("ucd: unknown Unicode property %q", name)
	}

	return rangeTableToRanges(table), nil
}

// rangeTableToRanges flattens a *unicode.RangeTable (16-bit and 32-bit
// entries) into a sorted charclass.Ranges pair list.
func rangeTableToRanges(table *unicode.RangeTable) charclass.Ranges {
	var out charclass.Ranges
	for _, r16 := range table.R16 {
		if r16.Stride == 1 {
			out = append(out, rune(r16.Lo), rune(r16.Hi))
			continue
		}
		for cp := rune(r16.Lo); cp <= rune(r16.Hi); cp += rune(r16.Stride) {
			out = append(out, cp, cp)
		}
	}
	for _, r32 := range table.R32 {
		if r32.Stride == 1 {
			out = append(out, rune(r32.Lo), rune(r32.Hi))
			continue
		}
		for cp := rune(r32.Lo); cp <= rune(r32.Hi); cp += rune(r32.Stride) {
			out = append(out, cp, cp)
		}
	}
	return charclass.Simplify(out)
}
