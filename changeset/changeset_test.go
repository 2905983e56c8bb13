package changeset

import "testing"

func TestSummarize_Identical(t *testing.T) {
	body := "line1\nline2\nline3"

	cs := Summarize(body, body)

	if cs.HasChanges {
		t.Error("expected no changes for identical inputs")
	}
	if cs.AddedLines != 0 || cs.RemovedLines != 0 {
		t.Errorf("expected zero counts, got +%d -%d", cs.AddedLines, cs.RemovedLines)
	}
	if len(cs.Segments) != 0 {
		t.Errorf("expected no segments, got %d", len(cs.Segments))
	}
}

func TestSummarize_LineCounts(t *testing.T) {
	oldBody := "line1\nline2\nline3"
	newBody := "line1\nlineX\nline3\nline4"

	cs := Summarize(oldBody, newBody)

	if !cs.HasChanges {
		t.Fatal("expected changes")
	}
	if cs.AddedLines != 2 {
		t.Errorf("expected 2 added lines, got %d", cs.AddedLines)
	}
	if cs.RemovedLines != 1 {
		t.Errorf("expected 1 removed line, got %d", cs.RemovedLines)
	}
}

func TestSummarize_EmptyOld(t *testing.T) {
	cs := Summarize("", "a\nb\nc")

	if cs.AddedLines != 3 || cs.RemovedLines != 0 {
		t.Errorf("expected +3 -0, got +%d -%d", cs.AddedLines, cs.RemovedLines)
	}
}

func TestSummarize_EmptyNew(t *testing.T) {
	cs := Summarize("a\nb", "")

	if cs.AddedLines != 0 || cs.RemovedLines != 2 {
		t.Errorf("expected +0 -2, got +%d -%d", cs.AddedLines, cs.RemovedLines)
	}
}

func TestSummarize_TrailingNewlineIrrelevant(t *testing.T) {
	cs := Summarize("a\nb\n", "a\nb")

	if cs.HasChanges {
		t.Errorf("trailing terminator alone should not register as a change, got %+v", cs)
	}
}

func TestSummarize_SegmentsOrdered(t *testing.T) {
	cs := Summarize("keep\ndrop\nkeep2", "keep\nnew\nkeep2")

	want := []Segment{
		{Kind: Unchanged, Lines: 1},
		{Kind: Removed, Lines: 1},
		{Kind: Added, Lines: 1},
		{Kind: Unchanged, Lines: 1},
	}
	if len(cs.Segments) != len(want) {
		t.Fatalf("expected %d segments, got %d: %+v", len(want), len(cs.Segments), cs.Segments)
	}
	for i, seg := range cs.Segments {
		if seg != want[i] {
			t.Errorf("segment %d: expected %+v, got %+v", i, want[i], seg)
		}
	}
}

func TestSummarize_Deterministic(t *testing.T) {
	oldBody := "a\nb\nc\nd\ne"
	newBody := "a\nx\nc\ny\ne\nf"

	first := Summarize(oldBody, newBody)
	for i := 0; i < 10; i++ {
		got := Summarize(oldBody, newBody)
		if got.AddedLines != first.AddedLines || got.RemovedLines != first.RemovedLines || len(got.Segments) != len(first.Segments) {
			t.Fatalf("run %d diverged: %+v vs %+v", i, got, first)
		}
	}
}

func TestSummary_Format(t *testing.T) {
	cs := ChangeSet{AddedLines: 2, RemovedLines: 1, HasChanges: true}

	if got := cs.Summary(); got != "+2 -1 lines" {
		t.Errorf("expected %q, got %q", "+2 -1 lines", got)
	}
}
