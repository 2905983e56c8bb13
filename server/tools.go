package server

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolHandler executes one tool with arguments parsed from the MCP
// request.
type ToolHandler func(ctx context.Context, args map[string]any) (any, error)

// tools returns the tool definitions advertised on tools/list, in a
// stable order.
func (s *Server) tools() []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "wiki_search",
			Description: "Search wiki pages by text. Returns matching page IDs, titles and excerpts.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "Text to search for in page titles and bodies.",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum number of results (default 10).",
						"default":     10,
					},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        "wiki_read",
			Description: "Read a wiki page. Returns its title, current version and body converted to Markdown.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"pageId": map[string]any{
						"type":        "string",
						"description": "ID of the page to read.",
					},
				},
				"required": []string{"pageId"},
			},
		},
		{
			Name:        "wiki_create",
			Description: "Create a new wiki page in the configured space.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": map[string]any{
						"type":        "string",
						"description": "Title of the new page.",
					},
					"body": map[string]any{
						"type":        "string",
						"description": "Page body in storage format.",
					},
					"parentId": map[string]any{
						"type":        "string",
						"description": "Optional parent page ID.",
					},
				},
				"required": []string{"title", "body"},
			},
		},
		{
			Name: "wiki_update",
			Description: "Update a wiki page without clobbering concurrent edits. Pass baselineVersion " +
				"(the version you last read) to detect conflicts; a stale baseline returns " +
				"conflict-detected instead of writing. Set forceUpdate to override.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"pageId": map[string]any{
						"type":        "string",
						"description": "ID of the page to update.",
					},
					"title": map[string]any{
						"type":        "string",
						"description": "New page title.",
					},
					"body": map[string]any{
						"type":        "string",
						"description": "New page body in storage format.",
					},
					"baselineVersion": map[string]any{
						"type":        "integer",
						"description": "Version the caller last read. Omit to skip conflict detection.",
					},
					"forceUpdate": map[string]any{
						"type":        "boolean",
						"description": "Write even when the baseline is stale (default false).",
						"default":     false,
					},
				},
				"required": []string{"pageId", "title", "body"},
			},
		},
		{
			Name: "wiki_attachments",
			Description: "List a page's attachments, or download one as base64 when attachmentId " +
				"is given.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"pageId": map[string]any{
						"type":        "string",
						"description": "ID of the page whose attachments to list.",
					},
					"attachmentId": map[string]any{
						"type":        "string",
						"description": "Optional attachment ID to download.",
					},
				},
				"required": []string{"pageId"},
			},
		},
		{
			Name: "wiki_export",
			Description: "Export a page and all of its descendants to Markdown files on disk, " +
				"breadth-first from the root page.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"pageId": map[string]any{
						"type":        "string",
						"description": "Root page ID of the tree to export.",
					},
					"dir": map[string]any{
						"type":        "string",
						"description": "Target directory (defaults to the configured export dir).",
					},
					"maxPages": map[string]any{
						"type":        "integer",
						"description": "Maximum number of pages to export.",
					},
				},
				"required": []string{"pageId"},
			},
		},
	}
}

// Execute runs a tool by name with the given arguments.
func (s *Server) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	var handler ToolHandler
	switch name {
	case "wiki_search":
		handler = s.handleSearch
	case "wiki_read":
		handler = s.handleRead
	case "wiki_create":
		handler = s.handleCreate
	case "wiki_update":
		handler = s.handleUpdate
	case "wiki_attachments":
		handler = s.handleAttachments
	case "wiki_export":
		handler = s.handleExport
	default:
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	return handler(ctx, args)
}
