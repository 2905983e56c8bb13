// Package wiki is a REST client for Confluence-compatible wiki stores.
//
// It covers the content operations the rest of the module needs: fetching
// and writing pages with their version numbers, creating pages, text
// search scoped to a space, listing child pages for hierarchical walks,
// and attachment metadata plus binary download.
//
// # Configuration
//
// The client takes an explicit Config at construction; it never reads
// environment variables or other ambient state:
//
//	client, err := wiki.NewClient(wiki.Config{
//	    BaseURL:  "https://wiki.example.com",
//	    Username: "bot@example.com",
//	    APIToken: token,
//	    SpaceKey: "ENG",
//	})
//
// # Versioning
//
// Page versions are assigned by the remote store and only increase. A
// write declares the version it expects to follow; if the store rejects
// a stale write, the rejection surfaces as a *RemoteError and is never
// swallowed. The client performs no caching: every call observes the
// store's current state at that moment.
//
// # Thread Safety
//
// A Client holds no mutable state and is safe for concurrent use.
package wiki
