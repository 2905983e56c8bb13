package wiki

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// SearchPages runs a text search over page titles and bodies, scoped to
// the configured space when one is set. Results come back in the store's
// relevance order.
func (c *Client) SearchPages(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}

	cql := fmt.Sprintf("type=page AND text ~ %s", quoteCQL(query))
	if c.config.SpaceKey != "" {
		cql += fmt.Sprintf(" AND space=%s", quoteCQL(c.config.SpaceKey))
	}

	q := url.Values{}
	q.Set("cql", cql)
	q.Set("limit", strconv.Itoa(limit))

	var list searchList
	if err := c.doJSON(ctx, http.MethodGet, "/rest/api/search", q, nil, &list); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(list.Results))
	for _, rec := range list.Results {
		results = append(results, SearchResult{
			ID:      rec.Content.ID,
			Title:   rec.Content.Title,
			Excerpt: rec.Excerpt,
			URL:     rec.Content.Links.WebUI,
		})
	}
	return results, nil
}

// ListChildren returns the direct child pages of a page, in the store's
// position order. Bodies are not expanded; callers fetch pages they
// actually need.
func (c *Client) ListChildren(ctx context.Context, id string) ([]Page, error) {
	q := url.Values{}
	q.Set("expand", "version")
	q.Set("limit", "200")

	var list contentList
	path := contentPath + "/" + url.PathEscape(id) + "/child/page"
	if err := c.doJSON(ctx, http.MethodGet, path, q, nil, &list); err != nil {
		return nil, err
	}
	return list.Results, nil
}

// quoteCQL wraps a value in double quotes, escaping embedded quotes and
// backslashes, which is all the CQL grammar needs for text operands.
func quoteCQL(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return `"` + v + `"`
}
