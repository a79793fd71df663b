// Package adrservice coordinates the ADR core, the sidecar index and
// event notification for the CLI, HTTP and MCP front ends.
package adrservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/starford/adrkit/internal/adr"
	"github.com/starford/adrkit/internal/apperr"
	"github.com/starford/adrkit/internal/index"
	"github.com/starford/adrkit/internal/storage"
	"github.com/starford/adrkit/internal/templates"
)

// Event kinds emitted by the service.
const (
	EventCreated    = "adr.created"
	EventSuperseded = "adr.superseded"
	EventChanged    = "adr.changed"
	EventDeleted    = "adr.deleted"
)

// EventFunc receives a notification after a successful mutation.
type EventFunc func(kind, filename string)

// Layout locates the ADR directory and the record document relative to
// the storage root.
type Layout struct {
	Dir    string
	Record string
}

// Detail is the full representation of one ADR.
type Detail struct {
	index.ADRRow
	Content string `json:"content"`
}

// Service coordinates storage, the ADR core and the index.
type Service struct {
	store  storage.Provider
	db     index.ADRIndex
	layout Layout
	tmpl   templates.Set
	logger *slog.Logger

	mu      sync.Mutex // serialises mutations within this process
	onEvent EventFunc
}

// NewService creates a new ADR service.
func NewService(store storage.Provider, db index.ADRIndex, layout Layout, tmpl templates.Set, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, db: db, layout: layout, tmpl: tmpl, logger: logger}
}

// OnEvent registers fn to be called after every mutation.
func (s *Service) OnEvent(fn EventFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEvent = fn
}

// Layout returns the configured directory and record locations.
func (s *Service) Layout() Layout {
	return s.layout
}

// Init ensures the ADR directory and record exist.
func (s *Service) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return adr.EnsureStorage(s.store, s.layout.Dir, s.layout.Record)
}

// Create creates a new ADR from answers and indexes it.
func (s *Service) Create(_ context.Context, answers *adr.Answers) (*adr.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := adr.Create(s.store, answers, s.tmpl.Body, s.tmpl.Entry, s.layout.Dir, s.layout.Record)
	if err != nil {
		if res != nil {
			// The new ADR exists even though linking failed.
			s.reindex(res.Filename)
		}
		return res, err
	}

	s.logger.Info("adr created",
		slog.String("file", res.Filename),
		slog.String("title", res.TitleCased))
	s.reindex(res.Filename)
	s.emit(EventCreated, res.Filename)

	if res.Superseded != "" {
		s.reindex(res.Superseded)
		s.warnDivergence(res.Superseded, res.RecordLinked)
		s.emit(EventSuperseded, res.Superseded)
	}
	return res, nil
}

// Link appends note to target and to target's record section. It
// reports whether the record section was found.
func (s *Service) Link(_ context.Context, target, note string) (bool, error) {
	if !adr.IsADRFilename(target) || strings.TrimSpace(note) == "" {
		return false, fmt.Errorf("link %q: %w", target, apperr.ErrMalformedInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	linked, err := adr.LinkSupersession(s.store, target, note, s.layout.Dir, s.layout.Record)
	if err != nil {
		return false, err
	}
	s.reindex(target)
	s.warnDivergence(target, linked)
	s.emit(EventSuperseded, target)
	return linked, nil
}

// Next returns the number the next ADR will get.
func (s *Service) Next(_ context.Context) (string, error) {
	n, err := adr.NextSequenceNumber(s.store, s.layout.Dir, s.layout.Record)
	if errors.Is(err, apperr.ErrNotFound) {
		return adr.FormatNumber(1), nil
	}
	return n, err
}

// Candidates returns the filenames an ADR may supersede.
func (s *Service) Candidates(_ context.Context) ([]string, error) {
	names, err := adr.Filenames(s.store, s.layout.Dir, s.layout.Record)
	if errors.Is(err, apperr.ErrNotFound) {
		return []string{}, nil
	}
	return names, err
}

// List returns indexed ADRs, filtered by query when it is non-empty.
func (s *Service) List(_ context.Context, query string) ([]index.ADRRow, error) {
	var (
		rows []index.ADRRow
		err  error
	)
	if strings.TrimSpace(query) == "" {
		rows, err = s.db.List()
	} else {
		rows, err = s.db.Search(query, 0)
	}
	if err != nil {
		return nil, err
	}
	return nonNilSlice(rows), nil
}

// Get reads one ADR from disk and enriches it with index data.
func (s *Service) Get(_ context.Context, filename string) (*Detail, error) {
	if !adr.IsADRFilename(filename) {
		return nil, fmt.Errorf("get %q: %w", filename, apperr.ErrNotFound)
	}
	data, err := s.store.Read(filepath.Join(s.layout.Dir, filename))
	if err != nil {
		return nil, err
	}

	row, err := s.db.Get(filename)
	if errors.Is(err, apperr.ErrNotFound) {
		if err := index.IndexFile(s.db, filename, data); err != nil {
			return nil, err
		}
		row, err = s.db.Get(filename)
	}
	if err != nil {
		return nil, err
	}
	return &Detail{ADRRow: *row, Content: string(data)}, nil
}

// Record returns the aggregated record document.
func (s *Service) Record(_ context.Context) (string, error) {
	data, err := s.store.Read(s.layout.Record)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Reindex rebuilds the index from the ADR directory.
func (s *Service) Reindex(_ context.Context) error {
	if !s.store.Exists(s.layout.Dir) {
		return nil
	}
	return index.Sync(s.db, s.store, s.layout.Dir, s.layout.Record, s.logger)
}

// HandleWatchEvent forwards index changes observed on disk as service
// events. It matches index.EventCallback.
func (s *Service) HandleWatchEvent(kind, filename string) {
	switch kind {
	case index.EventDeleted:
		s.emit(EventDeleted, filename)
	default:
		s.emit(EventChanged, filename)
	}
}

func (s *Service) reindex(filename string) {
	data, err := s.store.Read(filepath.Join(s.layout.Dir, filename))
	if err == nil {
		err = index.IndexFile(s.db, filename, data)
	}
	if err != nil {
		s.logger.Warn("index update failed",
			slog.String("file", filename),
			slog.String("error", err.Error()))
	}
}

func (s *Service) warnDivergence(target string, linked bool) {
	if linked {
		return
	}
	s.logger.Warn("record section not found; only the ADR document was updated",
		slog.String("file", target),
		slog.String("record", s.layout.Record))
}

func (s *Service) emit(kind, filename string) {
	if s.onEvent != nil {
		s.onEvent(kind, filename)
	}
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
