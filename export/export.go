package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pagebridge/pagebridge/convert"
	"github.com/pagebridge/pagebridge/wiki"
)

// TreeClient is the slice of the wiki client the exporter needs.
type TreeClient interface {
	FetchPage(ctx context.Context, id string) (*wiki.Page, error)
	ListChildren(ctx context.Context, id string) ([]wiki.Page, error)
}

// Options configures an Exporter.
type Options struct {
	// Dir is the directory export files are written under. Created if
	// missing.
	Dir string
	// MaxPages bounds a run. Zero means the default of 1000.
	MaxPages int
	// Index receives every exported page when non-nil.
	Index *Index
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Report describes one finished export run.
type Report struct {
	RunID    string      `json:"runId"`
	RootID   string      `json:"rootId"`
	Pages    int         `json:"pages"`
	Files    []string    `json:"files"`
	Failures []PageError `json:"failures,omitempty"`
}

// PageError records a page that could not be exported.
type PageError struct {
	PageID string `json:"pageId"`
	Title  string `json:"title,omitempty"`
	Err    string `json:"error"`
}

// Exporter crawls page trees. Safe for concurrent runs as long as the
// target directories differ.
type Exporter struct {
	client    TreeClient
	converter *convert.Converter
	opts      Options
	log       *slog.Logger
}

// NewExporter creates an Exporter.
func NewExporter(client TreeClient, opts Options) (*Exporter, error) {
	if strings.TrimSpace(opts.Dir) == "" {
		return nil, fmt.Errorf("export: target dir is required")
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = 1000
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Exporter{
		client:    client,
		converter: convert.NewConverter(),
		opts:      opts,
		log:       logger,
	}, nil
}

// Run exports the tree rooted at rootID. Fetch and convert failures are
// collected per page; only a failure on the root itself aborts the run.
func (e *Exporter) Run(ctx context.Context, rootID string) (*Report, error) {
	if strings.TrimSpace(rootID) == "" {
		return nil, fmt.Errorf("export: root page ID is required")
	}
	if err := os.MkdirAll(e.opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: create target dir: %w", err)
	}

	report := &Report{RunID: uuid.NewString(), RootID: rootID}
	e.log.Info("export started", "run", report.RunID, "root", rootID, "dir", e.opts.Dir)

	queue := []string{rootID}
	seen := map[string]bool{rootID: true}

	for len(queue) > 0 && report.Pages < e.opts.MaxPages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		id := queue[0]
		queue = queue[1:]

		page, err := e.client.FetchPage(ctx, id)
		if err != nil {
			if id == rootID {
				return nil, err
			}
			report.Failures = append(report.Failures, PageError{PageID: id, Err: err.Error()})
			e.log.Warn("page fetch failed", "run", report.RunID, "page", id, "err", err)
			continue
		}

		file, err := e.writePage(page)
		if err != nil {
			report.Failures = append(report.Failures, PageError{PageID: id, Title: page.Title, Err: err.Error()})
			e.log.Warn("page export failed", "run", report.RunID, "page", id, "err", err)
		} else {
			report.Pages++
			report.Files = append(report.Files, file)
		}

		children, err := e.client.ListChildren(ctx, id)
		if err != nil {
			report.Failures = append(report.Failures, PageError{PageID: id, Title: page.Title, Err: err.Error()})
			continue
		}
		for _, child := range children {
			if !seen[child.ID] {
				seen[child.ID] = true
				queue = append(queue, child.ID)
			}
		}
	}

	e.log.Info("export finished", "run", report.RunID,
		"pages", report.Pages, "failures", len(report.Failures))
	return report, nil
}

func (e *Exporter) writePage(page *wiki.Page) (string, error) {
	markdown, err := e.converter.ToMarkdown(page.Body.Storage.Value)
	if err != nil {
		return "", err
	}

	name := fileName(page.Title, page.ID)
	path := filepath.Join(e.opts.Dir, name)

	content := fmt.Sprintf("# %s\n\n%s\n", page.Title, markdown)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}

	if e.opts.Index != nil {
		if err := e.opts.Index.Add(page.ID, page.Title, markdown); err != nil {
			return "", err
		}
	}
	return path, nil
}

// fileName derives a filesystem-safe name from a page title, falling
// back to the page ID when nothing survives sanitization.
func fileName(title, id string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('-')
		}
	}

	name := strings.Trim(b.String(), "-")
	if name == "" {
		name = id
	}
	return name + ".md"
}
