package adr

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/starford/adrkit/internal/record"
	"github.com/starford/adrkit/internal/storage"
	"github.com/starford/adrkit/internal/textutil"
)

// SupersedesNote is the note placed in a new ADR that replaces target.
func SupersedesNote(target string) string {
	return fmt.Sprintf("- supersedes: [%s](./%s)", strings.TrimSuffix(target, ".md"), target)
}

// SupersededByNote is the note appended to the replaced ADR, linking to
// the new ADR by its lower-cased title.
func SupersededByNote(title, filename string) string {
	return fmt.Sprintf("- superseded by: [%s](./%s)", strings.ToLower(title), filename)
}

// LinkSupersession appends note verbatim to the ADR document target and
// inserts it at the end of target's section in the record.
//
// The returned bool is false when the record has no section for target;
// the ADR document has still been updated in that case, since the two
// files are not written transactionally.
func LinkSupersession(fs storage.Provider, target, note, location, recordPath string) (bool, error) {
	if err := fs.Append(filepath.Join(location, target), []byte(note)); err != nil {
		return false, fmt.Errorf("adr: append note to %s: %w", target, err)
	}

	data, err := fs.Read(recordPath)
	if err != nil {
		return false, fmt.Errorf("adr: read record: %w", err)
	}

	doc := record.Parse(string(data))
	section := doc.Find(target, textutil.DisplayTitle(target))
	if section == nil {
		return false, nil
	}
	section.AppendNote(note)

	if err := fs.Write(recordPath, []byte(doc.String())); err != nil {
		return false, fmt.Errorf("adr: write record: %w", err)
	}
	return true, nil
}
