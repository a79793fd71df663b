package adr

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/adrkit/internal/apperr"
	"github.com/starford/adrkit/internal/textutil"
)

// filenameRe matches the NNNN-slug.md naming convention. The number may
// be wider than four digits once the sequence passes 9999.
var filenameRe = regexp.MustCompile(`^(\d{4,})-[^/\\]*\.md$`)

// Answers is the input for creating one ADR, as gathered by an answer
// provider (interactive prompt, CLI flags, HTTP or MCP request).
type Answers struct {
	Title            string `json:"title"`
	Supersedes       bool   `json:"supersedes"`
	SupersededTarget string `json:"superseded_target,omitempty"`
}

// Validate rejects an empty title, a title whose slug would not form a
// single NNNN-slug.md path element, and a supersession without a
// well-formed target filename. Errors wrap apperr.ErrMalformedInput.
func (a *Answers) Validate() error {
	err := validation.ValidateStruct(a,
		validation.Field(&a.Title, validation.By(notBlank), validation.By(slugIsFilename)),
		validation.Field(&a.SupersededTarget,
			validation.When(a.Supersedes, validation.Required, validation.Match(filenameRe)),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrMalformedInput, err)
	}
	return nil
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

func slugIsFilename(value interface{}) error {
	s, _ := value.(string)
	name := "0001-" + textutil.Slugify(strings.TrimSpace(s)) + ".md"
	if filepath.Base(name) != name || !IsADRFilename(name) {
		return errors.New("must not contain path separators")
	}
	return nil
}

// IsADRFilename reports whether name follows the NNNN-slug.md convention.
func IsADRFilename(name string) bool {
	return filenameRe.MatchString(name)
}
