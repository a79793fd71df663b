// Package templates provides the ADR body and record entry templates.
package templates

import (
	"embed"
	"fmt"
	"os"
)

//go:embed files/*.tmpl
var files embed.FS

const (
	adrBodyFile     = "files/adr.md.tmpl"
	recordEntryFile = "files/record_entry.md.tmpl"
)

// Set is a pair of templates used to create one ADR.
type Set struct {
	Body  string
	Entry string
}

// ADRBody returns the built-in ADR document template.
func ADRBody() string {
	return mustRead(adrBodyFile)
}

// RecordEntry returns the built-in record section template.
func RecordEntry() string {
	return mustRead(recordEntryFile)
}

// Default returns the built-in template set.
func Default() Set {
	return Set{Body: ADRBody(), Entry: RecordEntry()}
}

// Load returns the built-in set with each template replaced by the
// contents of the corresponding file when its path is non-empty.
func Load(bodyPath, entryPath string) (Set, error) {
	set := Default()
	if bodyPath != "" {
		data, err := os.ReadFile(bodyPath)
		if err != nil {
			return Set{}, fmt.Errorf("templates: read body %s: %w", bodyPath, err)
		}
		set.Body = string(data)
	}
	if entryPath != "" {
		data, err := os.ReadFile(entryPath)
		if err != nil {
			return Set{}, fmt.Errorf("templates: read entry %s: %w", entryPath, err)
		}
		set.Entry = string(data)
	}
	return set, nil
}

func mustRead(name string) string {
	data, err := files.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("templates: embedded %s missing: %v", name, err))
	}
	return string(data)
}
