package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pagebridge/pagebridge/wiki"
)

// fakeTree serves a fixed page hierarchy.
type fakeTree struct {
	pages    map[string]wiki.Page
	children map[string][]string
	fetchErr map[string]error
}

func (f *fakeTree) FetchPage(ctx context.Context, id string) (*wiki.Page, error) {
	if err := f.fetchErr[id]; err != nil {
		return nil, err
	}
	page, ok := f.pages[id]
	if !ok {
		return nil, wiki.ErrNotFound
	}
	return &page, nil
}

func (f *fakeTree) ListChildren(ctx context.Context, id string) ([]wiki.Page, error) {
	var out []wiki.Page
	for _, childID := range f.children[id] {
		out = append(out, f.pages[childID])
	}
	return out, nil
}

func page(id, title, body string) wiki.Page {
	return wiki.Page{
		ID:      id,
		Title:   title,
		Body:    wiki.Body{Storage: wiki.Storage{Value: body}},
		Version: wiki.Version{Number: 1},
	}
}

func testTree() *fakeTree {
	return &fakeTree{
		pages: map[string]wiki.Page{
			"1": page("1", "Root Page", "<p>root</p>"),
			"2": page("2", "Child A", "<p>child a</p>"),
			"3": page("3", "Child B", "<p>child b</p>"),
			"4": page("4", "Grandchild", "<p>deep content</p>"),
		},
		children: map[string][]string{
			"1": {"2", "3"},
			"2": {"4"},
		},
		fetchErr: map[string]error{},
	}
}

func TestRun_WalksTree(t *testing.T) {
	dir := t.TempDir()
	exp, err := NewExporter(testTree(), Options{Dir: dir})
	if err != nil {
		t.Fatalf("NewExporter failed: %v", err)
	}

	report, err := exp.Run(context.Background(), "1")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Pages != 4 {
		t.Errorf("expected 4 pages exported, got %d", report.Pages)
	}
	if len(report.Failures) != 0 {
		t.Errorf("expected no failures, got %+v", report.Failures)
	}
	if report.RunID == "" {
		t.Error("expected a run ID")
	}

	raw, err := os.ReadFile(filepath.Join(dir, "root-page.md"))
	if err != nil {
		t.Fatalf("expected root-page.md: %v", err)
	}
	if !strings.Contains(string(raw), "# Root Page") {
		t.Errorf("expected title heading, got %q", raw)
	}
}

func TestRun_PartialFailure(t *testing.T) {
	tree := testTree()
	tree.fetchErr["3"] = fmt.Errorf("boom")

	exp, err := NewExporter(tree, Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewExporter failed: %v", err)
	}

	report, err := exp.Run(context.Background(), "1")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Pages != 3 {
		t.Errorf("expected 3 pages, got %d", report.Pages)
	}
	if len(report.Failures) != 1 || report.Failures[0].PageID != "3" {
		t.Errorf("expected failure for page 3, got %+v", report.Failures)
	}
}

func TestRun_RootFailureAborts(t *testing.T) {
	tree := testTree()
	tree.fetchErr["1"] = fmt.Errorf("boom")

	exp, err := NewExporter(tree, Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewExporter failed: %v", err)
	}

	if _, err := exp.Run(context.Background(), "1"); err == nil {
		t.Fatal("expected root fetch failure to abort the run")
	}
}

func TestRun_MaxPages(t *testing.T) {
	exp, err := NewExporter(testTree(), Options{Dir: t.TempDir(), MaxPages: 2})
	if err != nil {
		t.Fatalf("NewExporter failed: %v", err)
	}

	report, err := exp.Run(context.Background(), "1")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Pages != 2 {
		t.Errorf("expected the run to stop at 2 pages, got %d", report.Pages)
	}
}

func TestRun_IndexesExportedPages(t *testing.T) {
	idx, err := NewMemIndex()
	if err != nil {
		t.Fatalf("NewMemIndex failed: %v", err)
	}
	defer idx.Close()

	exp, err := NewExporter(testTree(), Options{Dir: t.TempDir(), Index: idx})
	if err != nil {
		t.Fatalf("NewExporter failed: %v", err)
	}
	if _, err := exp.Run(context.Background(), "1"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	hits, err := idx.Search("deep content", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected at least one hit")
	}
	if hits[0].PageID != "4" {
		t.Errorf("expected page 4 first, got %s", hits[0].PageID)
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		title string
		id    string
		want  string
	}{
		{"Root Page", "1", "root-page.md"},
		{"API / Design (v2)", "2", "api--design-v2.md"},
		{"日本語", "3", "3.md"},
	}

	for _, tt := range tests {
		if got := fileName(tt.title, tt.id); got != tt.want {
			t.Errorf("fileName(%q): expected %q, got %q", tt.title, tt.want, got)
		}
	}
}
