package adr

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/starford/adrkit/internal/storage"
)

const firstNumber = "0001"

// Filenames returns the ADR documents in location, sorted by name. The
// record document is excluded by its base name.
func Filenames(fs storage.Provider, location, recordPath string) ([]string, error) {
	names, err := fs.List(location)
	if err != nil {
		return nil, fmt.Errorf("adr: list %s: %w", location, err)
	}
	recordName := filepath.Base(recordPath)
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == recordName || !IsADRFilename(n) {
			continue
		}
		out = append(out, n)
	}
	sort.Strings(out)
	return out, nil
}

// NextSequenceNumber returns the number for the next ADR in location:
// one more than the highest existing number, zero-padded to four digits,
// or "0001" when there are none. Numbers compare numerically, so the
// sequence keeps growing past 9999. Names whose prefix overflows an int
// are ignored.
func NextSequenceNumber(fs storage.Provider, location, recordPath string) (string, error) {
	names, err := Filenames(fs, location, recordPath)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return firstNumber, nil
	}

	highest := 0
	for _, n := range names {
		num, err := Number(n)
		if err != nil {
			continue
		}
		if num > highest {
			highest = num
		}
	}
	return FormatNumber(highest + 1), nil
}

// Number parses the sequence prefix of an ADR filename.
func Number(filename string) (int, error) {
	m := filenameRe.FindStringSubmatch(filename)
	if m == nil {
		return 0, fmt.Errorf("adr: %q is not an ADR filename", filename)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("adr: parse number of %q: %w", filename, err)
	}
	return n, nil
}

// FormatNumber renders n zero-padded to at least four digits.
func FormatNumber(n int) string {
	return fmt.Sprintf("%04d", n)
}
