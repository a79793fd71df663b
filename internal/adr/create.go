package adr

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/starford/adrkit/internal/apperr"
	"github.com/starford/adrkit/internal/render"
	"github.com/starford/adrkit/internal/storage"
	"github.com/starford/adrkit/internal/textutil"
)

// Result describes a newly created ADR.
type Result struct {
	Number     string `json:"number"`
	Filename   string `json:"filename"`
	Path       string `json:"path"`
	Title      string `json:"title"`
	TitleCased string `json:"title_cased"`
	// Superseded is the filename of the ADR this one replaces, if any.
	Superseded string `json:"superseded,omitempty"`
	// RecordLinked is false when a supersession was requested but the
	// record had no section for the superseded ADR.
	RecordLinked bool `json:"record_linked"`
}

// Create writes a new ADR document rendered from bodyTmpl, appends a
// section rendered from entryTmpl to the record, and, when answers
// declares a supersession, links the superseded ADR back to the new one.
//
// Writes happen in this order: ADR document, record entry, back-link.
func Create(fs storage.Provider, answers *Answers, bodyTmpl, entryTmpl, location, recordPath string) (*Result, error) {
	if err := answers.Validate(); err != nil {
		return nil, err
	}
	if err := EnsureStorage(fs, location, recordPath); err != nil {
		return nil, err
	}
	if answers.Supersedes && !fs.Exists(filepath.Join(location, answers.SupersededTarget)) {
		return nil, fmt.Errorf("adr: superseded ADR %s: %w", answers.SupersededTarget, apperr.ErrNotFound)
	}

	number, err := NextSequenceNumber(fs, location, recordPath)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(answers.Title)
	titleCased := textutil.TitleCase(title)
	filename := fmt.Sprintf("%s-%s.md", number, textutil.Slugify(title))
	path := filepath.Join(location, filename)

	var supersedesNote, supersededByNote string
	if answers.Supersedes {
		supersedesNote = SupersedesNote(answers.SupersededTarget)
		supersededByNote = SupersededByNote(title, filename)
	}

	body := render.Render(bodyTmpl, map[string]string{
		render.TitleCased:     titleCased,
		render.SupersedesNote: supersedesNote,
	})
	if err := fs.Create(path, []byte(body)); err != nil {
		return nil, fmt.Errorf("adr: write %s: %w", filename, err)
	}

	entry := render.Render(entryTmpl, map[string]string{
		render.TitleCased:     titleCased,
		render.Filename:       filename,
		render.SupersedesNote: supersedesNote,
	})
	if err := fs.Append(recordPath, []byte(entry)); err != nil {
		return nil, fmt.Errorf("adr: append record entry: %w", err)
	}

	res := &Result{
		Number:     number,
		Filename:   filename,
		Path:       path,
		Title:      title,
		TitleCased: titleCased,
	}
	if !answers.Supersedes {
		return res, nil
	}

	res.Superseded = answers.SupersededTarget
	res.RecordLinked, err = LinkSupersession(fs, answers.SupersededTarget, supersededByNote, location, recordPath)
	if err != nil {
		return res, err
	}
	return res, nil
}
