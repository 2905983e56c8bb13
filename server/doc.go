// Package server exposes the wiki operations as MCP tools.
//
// It speaks MCP JSON-RPC 2.0 over stdio or HTTP, registering six tools:
// wiki_search, wiki_read, wiki_create, wiki_update, wiki_attachments and
// wiki_export. wiki_update is the conflict-aware patch operation backed
// by the patch package; its conflict and no-change results are reported
// as successful structured responses, never as protocol errors.
//
// All tool arguments are validated before any network call: required
// strings must be non-empty and must not contain script tags or
// javascript: URIs. Validation failures and remote store failures are
// the only things that surface as JSON-RPC errors.
package server
