// Package parser extracts frontmatter, the title, and supersession links
// from ADR Markdown documents.
package parser

import (
	"bytes"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	supersedesRe   = regexp.MustCompile(`-\s*supersedes:\s*\[[^\]]*\]\(([^)\s]+)\)`)
	supersededByRe = regexp.MustCompile(`-\s*superseded by:\s*\[[^\]]*\]\(([^)\s]+)\)`)
)

// Result holds the output of parsing an ADR document.
type Result struct {
	Frontmatter  map[string]interface{}
	Body         string
	Title        string
	Supersedes   []string
	SupersededBy []string
}

// Parse extracts frontmatter, body, title and relationship notes from raw
// Markdown bytes.
func Parse(data []byte) (*Result, error) {
	fm, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}

	return &Result{
		Frontmatter:  fm,
		Body:         body,
		Title:        deriveTitle(fm, body),
		Supersedes:   extractTargets(supersedesRe, body),
		SupersededBy: extractTargets(supersededByRe, body),
	}, nil
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the Markdown body. If no frontmatter is found the entire content is body.
func splitFrontmatter(data []byte) (map[string]interface{}, string, error) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data), nil
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data), nil
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]interface{}
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		// Invalid YAML is treated as body text.
		return nil, string(data), nil
	}

	return fm, body, nil
}

// extractTargets returns the deduplicated link targets matched by re, with
// any leading "./" removed.
func extractTargets(re *regexp.Regexp, body string) []string {
	matches := re.FindAllStringSubmatch(body, -1)
	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		target := strings.TrimPrefix(m[1], "./")
		if _, ok := seen[target]; ok {
			continue
		}
		seen[target] = struct{}{}
		out = append(out, target)
	}
	return out
}

// deriveTitle returns the frontmatter "title" if present, otherwise the first
// H1 heading, otherwise empty string.
func deriveTitle(fm map[string]interface{}, body string) string {
	if fm != nil {
		if t, ok := fm["title"]; ok {
			if s, ok := t.(string); ok && s != "" {
				return s
			}
		}
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
