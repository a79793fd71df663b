package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultPlaceholders(t *testing.T) {
	body := ADRBody()
	for _, p := range []string{"{{titleCased}}", "{{supersedesNote}}"} {
		if strings.Count(body, p) != 1 {
			t.Errorf("body should contain %s exactly once", p)
		}
	}
	entry := RecordEntry()
	for _, p := range []string{"{{titleCased}}", "{{filename}}", "{{supersedesNote}}"} {
		if strings.Count(entry, p) != 1 {
			t.Errorf("entry should contain %s exactly once", p)
		}
	}
	if !strings.HasPrefix(entry, "\n## [") {
		t.Errorf("entry must open with a level-2 link heading, got %q", entry[:10])
	}
}

func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()
	bodyPath := filepath.Join(dir, "body.md")
	if err := os.WriteFile(bodyPath, []byte("# {{titleCased}}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := Load(bodyPath, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.Body != "# {{titleCased}}\n" {
		t.Errorf("body = %q", set.Body)
	}
	if set.Entry != RecordEntry() {
		t.Error("entry should fall back to the built-in template")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("", filepath.Join(t.TempDir(), "nope.md")); err == nil {
		t.Error("expected error for missing entry template")
	}
}
