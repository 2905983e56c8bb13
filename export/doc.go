// Package export walks a page tree and writes it to disk as Markdown.
//
// The walk is breadth-first from a root page, one fetch per page, with
// no caching: each run observes the store as it is during the crawl.
// Pages that fail to fetch or convert are recorded in the report and do
// not abort the run.
//
// An optional Index makes the exported content searchable locally after
// the crawl, backed by bleve.
package export
