// Package patch implements conflict-aware page updates.
//
// A Coordinator turns an UpdateRequest into exactly one of three
// outcomes: the write happened (Success), the write was pointless
// (NoChangesNeeded), or another actor moved the page since the caller's
// baseline (ConflictDetected). Conflicts are business outcomes, not
// errors; only remote I/O and validation failures surface as errors.
//
// # Concurrency
//
// The check is advisory optimistic concurrency, not locking. Apply reads
// the page, compares versions, and conditionally writes — but nothing
// stops another actor from writing between the read and the write. Two
// concurrent Apply calls can both pass the version comparison against
// the same current version; the store's own version check on write is
// the only backstop against a silent lost update, and a rejection there
// propagates as the client's *RemoteError. The comparison catches the
// common case (a caller editing from a stale snapshot) and forces an
// explicit decision; it does not guarantee serializability.
//
// A Coordinator holds no mutable state between calls and is safe to
// invoke concurrently.
package patch
