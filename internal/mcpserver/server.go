// Package mcpserver exposes the ADR service as MCP (Model Context
// Protocol) tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/adrkit/internal/adr"
	"github.com/starford/adrkit/internal/adrservice"
	"github.com/starford/adrkit/internal/apperr"
)

// Resource URIs.
const (
	RecordURI = "adr://record"
	FormatURI = "adr://format"
)

// Server wraps the MCP server with ADR tools.
type Server struct {
	mcp *server.MCPServer
	svc *adrservice.Service
}

// New creates an MCP server with every ADR tool and resource registered.
func New(svc *adrservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"adrkit",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("create_adr",
		mcp.WithDescription("Create the next numbered ADR from the default template and add it to the record. "+
			"Optionally supersede an existing ADR by filename. Read adr://format first."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Decision title, e.g. 'use sqlite for the index'")),
		mcp.WithString("supersedes", mcp.Description("Filename of the ADR this one replaces, e.g. 0003-use-postgres.md")),
	), s.createADR)

	s.mcp.AddTool(mcp.NewTool("list_adrs",
		mcp.WithDescription("List ADRs in number order, optionally filtered by a substring of title or body."),
		mcp.WithString("query", mcp.Description("Optional search text")),
	), s.listADRs)

	s.mcp.AddTool(mcp.NewTool("read_adr",
		mcp.WithDescription("Read the full Markdown content of one ADR."),
		mcp.WithString("filename", mcp.Required(), mcp.Description("ADR filename, e.g. 0001-record-decisions.md")),
	), s.readADR)

	s.mcp.AddTool(mcp.NewTool("next_adr_number",
		mcp.WithDescription("Return the number the next created ADR will receive."),
	), s.nextNumber)

	s.mcp.AddTool(mcp.NewTool("read_record",
		mcp.WithDescription("Read the aggregated record document listing every ADR."),
	), s.readRecord)

	s.mcp.AddResource(
		mcp.NewResource(RecordURI, "ADR Record",
			mcp.WithResourceDescription("Aggregated record of every ADR."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readRecordResource,
	)
	s.mcp.AddResource(
		mcp.NewResource(FormatURI, "ADR Format",
			mcp.WithResourceDescription("How ADR files and the record are named and structured."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func toolError(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return mcp.NewToolResultError("not found: " + err.Error())
	case errors.Is(err, apperr.ErrMalformedInput), errors.Is(err, apperr.ErrAlreadyExists):
		return mcp.NewToolResultError(err.Error())
	default:
		return mcp.NewToolResultError("internal error: " + err.Error())
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(out))
}

func (s *Server) createADR(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	answers := &adr.Answers{Title: title}
	if target, err := req.RequireString("supersedes"); err == nil && strings.TrimSpace(target) != "" {
		answers.Supersedes = true
		answers.SupersededTarget = strings.TrimSpace(target)
	}

	res, err := s.svc.Create(ctx, answers)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(res), nil
}

func (s *Server) listADRs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := ""
	if q, err := req.RequireString("query"); err == nil {
		query = q
	}
	rows, err := s.svc.List(ctx, query)
	if err != nil {
		return toolError(err), nil
	}
	if len(rows) == 0 {
		return mcp.NewToolResultText("no ADRs found"), nil
	}

	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%s\t%s", r.Filename, r.Title)
		if len(r.SupersededBy) > 0 {
			fmt.Fprintf(&b, "\t(superseded by %s)", strings.Join(r.SupersededBy, ", "))
		}
		b.WriteByte('\n')
	}
	return mcp.NewToolResultText(strings.TrimSuffix(b.String(), "\n")), nil
}

func (s *Server) readADR(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := req.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, err := s.svc.Get(ctx, filename)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(d.Content), nil
}

func (s *Server) nextNumber(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := s.svc.Next(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(n), nil
}

func (s *Server) readRecord(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := s.svc.Record(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) readRecordResource(ctx context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	text, err := s.svc.Record(ctx)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: RecordURI, MIMEType: "text/markdown", Text: text},
	}, nil
}

func (s *Server) readFormatResource(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: FormatURI, MIMEType: "text/markdown", Text: ADRFormat},
	}, nil
}
