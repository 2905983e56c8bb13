package server

import (
	"context"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pagebridge/pagebridge/convert"
	"github.com/pagebridge/pagebridge/patch"
	"github.com/pagebridge/pagebridge/wiki"
)

// WikiClient is the full client surface the tools need. *wiki.Client
// satisfies it; tests substitute doubles.
type WikiClient interface {
	FetchPage(ctx context.Context, id string) (*wiki.Page, error)
	WritePage(ctx context.Context, id, title, body string, expectedPriorVersion int) (*wiki.Page, error)
	CreatePage(ctx context.Context, title, body, parentID string) (*wiki.Page, error)
	SearchPages(ctx context.Context, query string, limit int) ([]wiki.SearchResult, error)
	ListChildren(ctx context.Context, id string) ([]wiki.Page, error)
	ListAttachments(ctx context.Context, pageID string) ([]wiki.Attachment, error)
	DownloadAttachment(ctx context.Context, att wiki.Attachment, w io.Writer) (int64, error)
}

// ServerInfo describes this MCP server for the initialize response.
type ServerInfo struct {
	Name    string
	Version string
}

// Config configures a Server.
type Config struct {
	ServerInfo ServerInfo
	// ExportDir is the default target for wiki_export runs.
	ExportDir string
	// ExportMaxPages bounds wiki_export runs. Zero uses the exporter
	// default.
	ExportMaxPages int
}

// Server dispatches MCP tool calls onto a wiki client.
type Server struct {
	client      WikiClient
	coordinator *patch.Coordinator
	converter   *convert.Converter
	config      Config
}

// New creates a Server around client.
func New(client WikiClient, cfg Config) *Server {
	if cfg.ServerInfo.Name == "" {
		cfg.ServerInfo.Name = "pagebridge"
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "export"
	}

	return &Server{
		client:      client,
		coordinator: patch.NewCoordinator(client),
		converter:   convert.NewConverter(),
		config:      cfg,
	}
}

// Handler returns the HTTP handler for the streamable HTTP transport:
// JSON-RPC on /, Prometheus metrics on /metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", ServeHTTP(s))
	return mux
}
