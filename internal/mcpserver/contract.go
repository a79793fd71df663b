package mcpserver

// ADRFormat describes how ADRs and the record are laid out, so that an
// LLM client knows what create_adr produces and how to read the result.
const ADRFormat = `# ADR Format

Architecture Decision Records live in one directory, one Markdown file per
decision, plus an aggregated record document.

## File names

- ` + "`" + `NNNN-slug.md` + "`" + `: NNNN is the zero-padded sequence number (at least four
  digits), slug is the lower-cased title with whitespace runs replaced by
  hyphens.
- Numbers are assigned by create_adr. Never pick one yourself; call
  next_adr_number to preview it.

## Document body

` + "```" + `markdown
# Title Cased Title

## Context and Problem Statement
## Considered Alternatives
## Decision Outcome
## Accepted Costs / Tradeoffs
## More Information

## Record notes
- supersedes: [0001-old-decision](./0001-old-decision.md)
` + "```" + `

## Record

The record holds one section per ADR, in creation order:

` + "```" + `markdown
## [Title Cased Title](NNNN-slug.md)

<!-- EDIT ME!! Please add full decision outcome text here before committing -->
` + "```" + `

## Supersession

Pass ` + "`" + `supersedes` + "`" + ` to create_adr with the filename of the ADR being
replaced. The new ADR gets a ` + "`" + `- supersedes:` + "`" + ` note and the old ADR, plus its
record section, get ` + "`" + `- superseded by: [new title](./NNNN-new.md)` + "`" + `.
ADRs are never deleted or renumbered.
`
