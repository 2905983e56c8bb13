// Package changeset reduces two versions of a page body to a line-level
// change summary.
//
// Summarize runs a line-oriented Myers diff (via sergi/go-diff) and
// collapses the result into ordered added/removed/unchanged segments plus
// aggregate line counts. The output is derived and ephemeral; nothing in
// this package touches the network or retains state between calls.
package changeset
