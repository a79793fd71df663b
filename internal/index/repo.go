package index

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/starford/adrkit/internal/apperr"
)

// ADRRow represents one catalogued ADR.
type ADRRow struct {
	Number       int       `json:"number"`
	Filename     string    `json:"filename"`
	Title        string    `json:"title"`
	Checksum     string    `json:"checksum"`
	Supersedes   []string  `json:"supersedes"`
	SupersededBy []string  `json:"superseded_by"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Upsert inserts or replaces an ADR and its outgoing supersession links
// within a transaction. SupersededBy is derived from other rows and is
// ignored here.
func (db *DB) Upsert(r ADRRow, body string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = time.Now()
	}

	_, err = tx.Exec(`
		INSERT INTO adrs (filename, number, title, checksum, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(filename) DO UPDATE SET
			number     = excluded.number,
			title      = excluded.title,
			checksum   = excluded.checksum,
			body       = excluded.body,
			updated_at = excluded.updated_at
	`, r.Filename, r.Number, r.Title, r.Checksum, body, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert adr: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM supersessions WHERE source = ?`, r.Filename); err != nil {
		return fmt.Errorf("index: clear supersessions: %w", err)
	}
	if len(r.Supersedes) > 0 {
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO supersessions (source, target) VALUES (?, ?)`)
		if err != nil {
			return fmt.Errorf("index: prepare supersession insert: %w", err)
		}
		defer stmt.Close()
		for _, target := range r.Supersedes {
			if _, err := stmt.Exec(r.Filename, target); err != nil {
				return fmt.Errorf("index: insert supersession: %w", err)
			}
		}
	}

	return tx.Commit()
}

// Delete removes an ADR and its outgoing links.
func (db *DB) Delete(filename string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, _ = tx.Exec(`DELETE FROM supersessions WHERE source = ?`, filename)
	_, _ = tx.Exec(`DELETE FROM adrs WHERE filename = ?`, filename)

	return tx.Commit()
}

// Get returns one ADR with both directions of supersession filled in.
func (db *DB) Get(filename string) (*ADRRow, error) {
	var r ADRRow
	err := db.conn.QueryRow(`
		SELECT filename, number, title, checksum, updated_at
		FROM adrs WHERE filename = ?
	`, filename).Scan(&r.Filename, &r.Number, &r.Title, &r.Checksum, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("index: %s: %w", filename, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("index: get: %w", err)
	}
	if err := db.fillLinks(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// List returns every ADR ordered by number.
func (db *DB) List() ([]ADRRow, error) {
	return db.query(`
		SELECT filename, number, title, checksum, updated_at
		FROM adrs ORDER BY number, filename
	`)
}

// Search returns ADRs whose title or body contains query.
func (db *DB) Search(query string, limit int) ([]ADRRow, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + strings.TrimSpace(query) + "%"
	return db.query(`
		SELECT filename, number, title, checksum, updated_at
		FROM adrs
		WHERE title LIKE ? OR body LIKE ?
		ORDER BY number, filename
		LIMIT ?
	`, like, like, limit)
}

// AllChecksums returns filename → checksum for every indexed ADR.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT filename, checksum FROM adrs`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var f, cs string
		if err := rows.Scan(&f, &cs); err != nil {
			return nil, err
		}
		out[f] = cs
	}
	return out, rows.Err()
}

func (db *DB) query(q string, args ...any) ([]ADRRow, error) {
	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("index: query: %w", err)
	}
	var out []ADRRow
	for rows.Next() {
		var r ADRRow
		if err := rows.Scan(&r.Filename, &r.Number, &r.Title, &r.Checksum, &r.UpdatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := db.fillLinks(&out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (db *DB) fillLinks(r *ADRRow) error {
	var err error
	r.Supersedes, err = db.column(`SELECT target FROM supersessions WHERE source = ? ORDER BY target`, r.Filename)
	if err != nil {
		return err
	}
	r.SupersededBy, err = db.column(`SELECT source FROM supersessions WHERE target = ? ORDER BY source`, r.Filename)
	return err
}

func (db *DB) column(q, arg string) ([]string, error) {
	rows, err := db.conn.Query(q, arg)
	if err != nil {
		return nil, fmt.Errorf("index: links: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
