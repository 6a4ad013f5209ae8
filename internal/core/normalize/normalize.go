// Package normalize cleans ticket and comment text before it is validated and stored
//
// Text runs one transform chain then trims:
// invalid UTF-8 and control characters go (line breaks and tabs stay),
// the rest is composed to NFC and format characters such as zero-width
// joiners, BOM and bidi marks are removed
package normalize

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

func unwanted(r rune) bool {
	switch r {
	case '\n', '\r', '\t':
		return false
	case utf8.RuneError:
		return true
	}
	return unicode.IsControl(r) || unicode.Is(unicode.Cf, r)
}

// chains are stateful, so each call takes its own
var chains = sync.Pool{
	New: func() any {
		return transform.Chain(
			runes.ReplaceIllFormed(),
			runes.Remove(runes.Predicate(unwanted)),
			norm.NFC,
		)
	},
}

// Text returns the cleaned form of s
func Text(s string) string {
	if s == "" {
		return ""
	}
	tr := chains.Get().(transform.Transformer)
	defer chains.Put(tr)
	tr.Reset()

	out, _, err := transform.String(tr, s)
	if err != nil {
		// keep the input as written
		out = s
	}
	return strings.TrimSpace(out)
}

// Ptr cleans the string p points at; nil stays nil
func Ptr(p *string) *string {
	if p == nil {
		return nil
	}
	v := Text(*p)
	return &v
}
