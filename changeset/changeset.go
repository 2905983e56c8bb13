package changeset

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// SegmentKind classifies a contiguous run of diff lines.
type SegmentKind uint8

const (
	Unchanged SegmentKind = iota
	Added
	Removed
)

// String returns the string representation of the segment kind.
func (k SegmentKind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// MarshalJSON emits the kind as its string tag.
func (k SegmentKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Segment is a contiguous run of lines sharing one classification.
type Segment struct {
	Kind  SegmentKind `json:"kind"`
	Lines int         `json:"lines"`
}

// ChangeSet is the line-level summary of the difference between two
// bodies. Segments preserve diff order.
type ChangeSet struct {
	HasChanges   bool      `json:"hasChanges"`
	AddedLines   int       `json:"addedLines"`
	RemovedLines int       `json:"removedLines"`
	Segments     []Segment `json:"segments,omitempty"`
}

// Summary renders the aggregate counts in "+a -r lines" form.
func (cs ChangeSet) Summary() string {
	return fmt.Sprintf("+%d -%d lines", cs.AddedLines, cs.RemovedLines)
}

// Summarize diffs oldBody against newBody line by line. It is pure and
// deterministic: identical inputs always produce an empty ChangeSet, and
// equal input pairs always produce equal output.
//
// A final line without a terminator still counts as one line, so bodies
// are normalized to end with a newline before diffing; without this the
// diff engine would report "line3" and "line3\n" as different lines.
func Summarize(oldBody, newBody string) ChangeSet {
	if oldBody == newBody {
		return ChangeSet{}
	}

	dmp := diffmatchpatch.New()
	// A deadline would make the diff depend on wall-clock time.
	dmp.DiffTimeout = 0

	oldText, newText := terminate(oldBody), terminate(newBody)
	oldChars, newChars, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(oldChars, newChars, false), lines)

	var cs ChangeSet
	for _, d := range diffs {
		n := strings.Count(d.Text, "\n")
		if n == 0 {
			continue
		}

		kind := Unchanged
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = Added
			cs.AddedLines += n
		case diffmatchpatch.DiffDelete:
			kind = Removed
			cs.RemovedLines += n
		}
		cs.Segments = append(cs.Segments, Segment{Kind: kind, Lines: n})
	}

	cs.HasChanges = cs.AddedLines > 0 || cs.RemovedLines > 0
	return cs
}

func terminate(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
