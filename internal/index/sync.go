package index

import (
	"log/slog"
	"path/filepath"

	"github.com/starford/adrkit/internal/adr"
	"github.com/starford/adrkit/internal/checksum"
	"github.com/starford/adrkit/internal/parser"
	"github.com/starford/adrkit/internal/storage"
	"github.com/starford/adrkit/internal/textutil"
)

// Sync walks the ADR directory and brings the index up to date:
//   - new/changed ADR documents are parsed and upserted
//   - documents removed from disk are deleted from the index
func Sync(db ADRIndex, store storage.Provider, location, recordPath string, logger *slog.Logger) error {
	names, err := adr.Filenames(store, location, recordPath)
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(names))
	for _, name := range names {
		disk[name] = struct{}{}

		data, err := store.Read(filepath.Join(location, name))
		if err != nil {
			logger.Warn("sync: read failed", slog.String("file", name), slog.String("error", err.Error()))
			continue
		}
		if checksum.Matches(data, checksums[name]) {
			continue
		}
		if err := IndexFile(db, name, data); err != nil {
			logger.Warn("sync: index failed", slog.String("file", name), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("file", name))
		}
	}

	// Remove stale entries.
	for name := range checksums {
		if _, ok := disk[name]; !ok {
			if err := db.Delete(name); err != nil {
				logger.Warn("sync: delete failed", slog.String("file", name), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("file", name))
			}
		}
	}

	return nil
}

// IndexFile parses an ADR document and upserts it into the DB. The title
// falls back to the one recovered from the filename when the document
// has no H1 heading.
func IndexFile(db ADRIndex, filename string, data []byte) error {
	number, err := adr.Number(filename)
	if err != nil {
		return err
	}
	res, err := parser.Parse(data)
	if err != nil {
		return err
	}
	title := res.Title
	if title == "" {
		title = textutil.DisplayTitle(filename)
	}
	return db.Upsert(ADRRow{
		Number:     number,
		Filename:   filename,
		Title:      title,
		Checksum:   checksum.Sum(data),
		Supersedes: res.Supersedes,
	}, res.Body)
}
