// Package textutil provides the string transforms used to name ADRs.
package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var seqPrefixRe = regexp.MustCompile(`^\d{4}-`)

// TitleCase lower-cases s and upper-cases the first rune of every
// whitespace-separated token. Tokens are joined with a single space.
func TitleCase(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	for i, f := range fields {
		r, size := utf8.DecodeRuneInString(f)
		fields[i] = string(unicode.ToUpper(r)) + f[size:]
	}
	return strings.Join(fields, " ")
}

// Slugify lower-cases s and joins its whitespace-separated tokens with
// hyphens. Tokens split the same way as in TitleCase.
func Slugify(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// DisplayTitle recovers the title-cased name from an ADR filename such as
// "0007-use-jest.md". The transform is lossy: hyphens in the original
// title come back as spaces.
func DisplayTitle(filename string) string {
	name := strings.TrimSuffix(filename, ".md")
	name = seqPrefixRe.ReplaceAllString(name, "")
	return TitleCase(strings.ReplaceAll(name, "-", " "))
}
