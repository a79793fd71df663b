// Package render fills {{name}} placeholders in document templates.
package render

import (
	"io"
	"strings"

	"github.com/valyala/fasttemplate"
)

// Placeholder names understood by the ADR templates.
const (
	TitleCased     = "titleCased"
	SupersedesNote = "supersedesNote"
	Filename       = "filename"
)

const (
	startTag = "{{"
	endTag   = "}}"
)

// Render substitutes every {{name}} span in tmpl with values[name].
// Placeholders without a value render as the empty string; keys with no
// matching placeholder are ignored.
func Render(tmpl string, values map[string]string) string {
	return fasttemplate.ExecuteFuncString(tmpl, startTag, endTag, func(w io.Writer, tag string) (int, error) {
		return io.WriteString(w, values[strings.TrimSpace(tag)])
	})
}
