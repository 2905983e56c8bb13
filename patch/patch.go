package patch

import (
	"context"
	"fmt"
	"strings"

	"github.com/pagebridge/pagebridge/changeset"
	"github.com/pagebridge/pagebridge/wiki"
)

// PageClient is the slice of the wiki client the coordinator needs.
type PageClient interface {
	FetchPage(ctx context.Context, id string) (*wiki.Page, error)
	WritePage(ctx context.Context, id, title, body string, expectedPriorVersion int) (*wiki.Page, error)
}

// UpdateRequest is a caller's intent to change one page.
type UpdateRequest struct {
	PageID string
	Title  string
	Body   string
	// BaselineVersion is the version the caller last read. Zero means
	// the caller has no baseline and the conflict check is skipped.
	BaselineVersion int
	// Force commits the update even when the baseline is stale.
	Force bool
}

// UpdateOutcome is the tagged result of one Apply call. Exactly one of
// the variant accessors matches Kind. Outcomes are produced fresh per
// call and hold no reference back to remote state.
type UpdateOutcome struct {
	Kind OutcomeKind

	// NewVersion is set for OutcomeSuccess.
	NewVersion int
	// CurrentVersion is the remote version observed by the fetch; set
	// for every outcome.
	CurrentVersion int
	// BaselineVersion echoes the request's baseline; set for
	// OutcomeConflict.
	BaselineVersion int
	// Changes is the diff of the current remote body against the
	// requested body; set for OutcomeSuccess and OutcomeConflict.
	Changes changeset.ChangeSet
}

// OutcomeKind tags an UpdateOutcome variant.
type OutcomeKind uint8

const (
	// OutcomeSuccess: the page was written and its version advanced.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeNoChanges: the remote body already matches the request;
	// no write was issued.
	OutcomeNoChanges
	// OutcomeConflict: the page moved past the caller's baseline and
	// the requested body differs from the current one; no write was
	// issued.
	OutcomeConflict
)

// String returns the wire tag for the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeNoChanges:
		return "no-changes"
	case OutcomeConflict:
		return "conflict-detected"
	default:
		return "unknown"
	}
}

// ValidationError reports a malformed request, rejected before any
// network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Coordinator applies conflict-aware updates through a PageClient.
type Coordinator struct {
	client PageClient
}

// NewCoordinator creates a Coordinator backed by client.
func NewCoordinator(client PageClient) *Coordinator {
	return &Coordinator{client: client}
}

// Apply runs one fetch-compare-decide-write sequence.
//
// The page is fetched, the requested body is diffed against what is
// actually there, and then:
//
//   - a stale baseline (present, unequal to the current version, and not
//     forced) yields OutcomeConflict when the diff is non-empty, or
//     OutcomeNoChanges when the remote already reflects the request — a
//     conflict that produces no actual diff is not worth surfacing;
//   - otherwise an empty diff yields OutcomeNoChanges without a write,
//     since writing identical content is wasted version churn;
//   - otherwise the page is written declaring the observed version as
//     its predecessor, and OutcomeSuccess reports currentVersion+1.
//
// Fetch or write failures abort the call with the client's error; no
// retry is attempted and no partial state is left behind, the write
// being the only mutating step. Retry policy belongs to the caller.
func (c *Coordinator) Apply(ctx context.Context, req UpdateRequest) (*UpdateOutcome, error) {
	if strings.TrimSpace(req.PageID) == "" {
		return nil, &ValidationError{Field: "pageID", Reason: "must not be empty"}
	}
	if req.BaselineVersion < 0 {
		return nil, &ValidationError{Field: "baselineVersion", Reason: "must be a positive version number"}
	}

	page, err := c.client.FetchPage(ctx, req.PageID)
	if err != nil {
		return nil, err
	}
	current := page.Version.Number

	changes := changeset.Summarize(page.Body.Storage.Value, req.Body)

	staleBaseline := req.BaselineVersion != 0 && req.BaselineVersion != current && !req.Force
	if staleBaseline && changes.HasChanges {
		return &UpdateOutcome{
			Kind:            OutcomeConflict,
			CurrentVersion:  current,
			BaselineVersion: req.BaselineVersion,
			Changes:         changes,
		}, nil
	}

	if !changes.HasChanges {
		return &UpdateOutcome{Kind: OutcomeNoChanges, CurrentVersion: current}, nil
	}

	if _, err := c.client.WritePage(ctx, req.PageID, req.Title, req.Body, current); err != nil {
		return nil, err
	}

	return &UpdateOutcome{
		Kind:           OutcomeSuccess,
		NewVersion:     current + 1,
		CurrentVersion: current,
		Changes:        changes,
	}, nil
}
