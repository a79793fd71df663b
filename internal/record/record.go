// Package record models the aggregated ADR record as an ordered list of
// sections, one per ADR, each opened by a level-2 link heading:
//
//	## [Use Jest For Testing](0001-use-jest-for-testing.md)
//
// Parsing is lossless: String on an unmodified Document returns the input.
package record

import (
	"strings"

	"github.com/starford/adrkit/internal/textutil"
)

const headingMarker = "## "

// Section is one ADR entry of the record.
type Section struct {
	// Title and Filename come from the heading link; both are empty when
	// the heading is not a link.
	Title    string
	Filename string
	// Body is everything after the heading line up to the next heading.
	Body string

	headLine string // heading line including its terminator, if any
}

// Heading returns the heading line without its line terminator.
func (s *Section) Heading() string {
	return strings.TrimRight(s.headLine, "\r\n")
}

// AppendNote adds note at the end of the section body, separated by
// newlines, so it lands just before the next section heading.
func (s *Section) AppendNote(note string) {
	s.Body += "\n" + note + "\n"
}

// Document is a parsed record.
type Document struct {
	Preamble string
	Sections []*Section
}

// Parse splits text into a preamble and sections. A section starts at
// every line beginning with "## ".
func Parse(text string) *Document {
	doc := &Document{}
	var cur *Section
	var buf strings.Builder

	flush := func() {
		if cur == nil {
			doc.Preamble = buf.String()
		} else {
			cur.Body = buf.String()
		}
		buf.Reset()
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, headingMarker) {
			flush()
			cur = newSection(line)
			doc.Sections = append(doc.Sections, cur)
			continue
		}
		buf.WriteString(line)
	}
	flush()
	return doc
}

func newSection(headLine string) *Section {
	s := &Section{headLine: headLine}
	s.Title, s.Filename = parseHeadingLink(s.Heading())
	return s
}

// parseHeadingLink splits "## [title](target)" into its parts. The title
// ends at the first "](" and the target at the last ")" of the line, so
// both may themselves contain brackets or parentheses.
func parseHeadingLink(line string) (title, filename string) {
	rest := strings.TrimLeft(strings.TrimPrefix(line, "##"), " \t")
	if !strings.HasPrefix(rest, "[") {
		return "", ""
	}
	i := strings.Index(rest, "](")
	if i < 0 {
		return "", ""
	}
	tail := rest[i+2:]
	j := strings.LastIndex(tail, ")")
	if j < 0 {
		return "", ""
	}
	target := strings.TrimSpace(tail[:j])
	if target == "" || strings.ContainsAny(target, " \t") {
		return "", ""
	}
	return rest[1:i], strings.TrimPrefix(target, "./")
}

// Find returns the first section whose heading links to filename with a
// matching title, or nil. Titles are compared after folding hyphens to
// spaces and title-casing both sides, because the title recovered from a
// filename cannot tell "real-time" from "real time".
func (d *Document) Find(filename, title string) *Section {
	want := foldTitle(title)
	for _, s := range d.Sections {
		if s.Filename == filename && foldTitle(s.Title) == want {
			return s
		}
	}
	return nil
}

func foldTitle(t string) string {
	return textutil.TitleCase(strings.ReplaceAll(t, "-", " "))
}

// String serializes the document back to text.
func (d *Document) String() string {
	var b strings.Builder
	b.WriteString(d.Preamble)
	for _, s := range d.Sections {
		b.WriteString(s.headLine)
		b.WriteString(s.Body)
	}
	return b.String()
}
