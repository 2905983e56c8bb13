package wiki

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// ListAttachments returns metadata for a page's attachments.
func (c *Client) ListAttachments(ctx context.Context, pageID string) ([]Attachment, error) {
	q := url.Values{}
	q.Set("expand", "metadata,extensions")
	q.Set("limit", "200")

	var list attachmentList
	path := contentPath + "/" + url.PathEscape(pageID) + "/child/attachment"
	if err := c.doJSON(ctx, http.MethodGet, path, q, nil, &list); err != nil {
		return nil, err
	}

	attachments := make([]Attachment, 0, len(list.Results))
	for _, rec := range list.Results {
		attachments = append(attachments, Attachment{
			ID:        rec.ID,
			Title:     rec.Title,
			MediaType: rec.Metadata.MediaType,
			FileSize:  rec.Extensions.FileSize,
			Download:  rec.Links.Download,
		})
	}
	return attachments, nil
}

// DownloadAttachment streams an attachment's binary content into w and
// returns the number of bytes copied.
func (c *Client) DownloadAttachment(ctx context.Context, att Attachment, w io.Writer) (int64, error) {
	if att.Download == "" {
		return 0, fmt.Errorf("wiki: attachment %s has no download link", att.ID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+att.Download, nil)
	if err != nil {
		return 0, fmt.Errorf("wiki: build request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &RemoteError{Op: "GET " + att.Download, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, remoteError("GET "+att.Download, resp.StatusCode, raw)
	}

	return io.Copy(w, resp.Body)
}
