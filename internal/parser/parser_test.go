package parser

import (
	"testing"
)

const adrDoc = `
# Use Jest For Testing

## Context and Problem Statement

<!-- write a few short sentences -->

## Record notes
- supersedes: [0001-use-mocha](./0001-use-mocha.md)
- superseded by: [use vitest](./0009-use-vitest.md)- superseded by: [use bun test](./0012-use-bun-test.md)`

func TestParse_ADRDocument(t *testing.T) {
	r, err := Parse([]byte(adrDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "Use Jest For Testing" {
		t.Errorf("title = %q", r.Title)
	}
	if len(r.Supersedes) != 1 || r.Supersedes[0] != "0001-use-mocha.md" {
		t.Errorf("supersedes = %v", r.Supersedes)
	}
	if len(r.SupersededBy) != 2 || r.SupersededBy[0] != "0009-use-vitest.md" || r.SupersededBy[1] != "0012-use-bun-test.md" {
		t.Errorf("superseded by = %v", r.SupersededBy)
	}
}

func TestParse_FrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: Hello\nstatus: accepted\n---\n# Other\nBody text.\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "Hello" {
		t.Errorf("title = %q, want %q", r.Title, "Hello")
	}
	if r.Frontmatter["status"] != "accepted" {
		t.Errorf("frontmatter = %v", r.Frontmatter)
	}
	if r.Body != "# Other\nBody text.\n" {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_NoNotes(t *testing.T) {
	r, err := Parse([]byte("# Plain\n\n## Record notes\n\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Supersedes != nil || r.SupersededBy != nil {
		t.Errorf("expected no links, got %v / %v", r.Supersedes, r.SupersededBy)
	}
}

func TestParse_InvalidYAMLFallback(t *testing.T) {
	input := []byte("---\n: invalid: yaml: {{{\n---\nBody\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter on invalid YAML")
	}
}

func TestDeriveTitle_H1Fallback(t *testing.T) {
	title := deriveTitle(nil, "some text\n# My Heading\nmore")
	if title != "My Heading" {
		t.Errorf("title = %q, want %q", title, "My Heading")
	}
}
