package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/pagebridge/pagebridge/export"
	"github.com/pagebridge/pagebridge/metrics"
	"github.com/pagebridge/pagebridge/patch"
	"github.com/pagebridge/pagebridge/wiki"
)

func (s *Server) handleSearch(ctx context.Context, args map[string]any) (any, error) {
	query, err := requireString(args, "query")
	if err != nil {
		return nil, err
	}
	limit := getInt(args, "limit", 10)

	results, err := s.client.SearchPages(ctx, query, limit)
	if err != nil {
		return nil, s.remoteFailure("wiki_search", err)
	}

	return map[string]any{
		"results": results,
		"count":   len(results),
	}, nil
}

func (s *Server) handleRead(ctx context.Context, args map[string]any) (any, error) {
	pageID, err := requireString(args, "pageId")
	if err != nil {
		return nil, err
	}

	page, err := s.client.FetchPage(ctx, pageID)
	if err != nil {
		return nil, s.remoteFailure("wiki_read", err)
	}

	markdown, err := s.converter.ToMarkdown(page.Body.Storage.Value)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"id":       page.ID,
		"title":    page.Title,
		"version":  page.Version.Number,
		"space":    page.Space.Key,
		"markdown": markdown,
		"url":      page.Links.WebUI,
	}, nil
}

func (s *Server) handleCreate(ctx context.Context, args map[string]any) (any, error) {
	title, err := requireString(args, "title")
	if err != nil {
		return nil, err
	}
	body, err := requireString(args, "body")
	if err != nil {
		return nil, err
	}
	parentID := getString(args, "parentId", "")
	if parentID != "" {
		if err := checkSafe("parentId", parentID); err != nil {
			return nil, err
		}
	}

	page, err := s.client.CreatePage(ctx, title, body, parentID)
	if err != nil {
		return nil, s.remoteFailure("wiki_create", err)
	}

	return map[string]any{
		"id":      page.ID,
		"title":   page.Title,
		"version": page.Version.Number,
		"url":     page.Links.WebUI,
	}, nil
}

// handleUpdate is the patch-update operation. Conflict and no-change
// outcomes are successful structured results; the tool call itself only
// fails on validation or remote errors.
func (s *Server) handleUpdate(ctx context.Context, args map[string]any) (any, error) {
	pageID, err := requireString(args, "pageId")
	if err != nil {
		return nil, err
	}
	title, err := requireString(args, "title")
	if err != nil {
		return nil, err
	}
	body, err := requireString(args, "body")
	if err != nil {
		return nil, err
	}

	req := patch.UpdateRequest{
		PageID:          pageID,
		Title:           title,
		Body:            body,
		BaselineVersion: getInt(args, "baselineVersion", 0),
		Force:           getBool(args, "forceUpdate", false),
	}

	outcome, err := s.coordinator.Apply(ctx, req)
	if err != nil {
		return nil, s.remoteFailure("wiki_update", err)
	}

	result := map[string]any{"status": outcome.Kind.String()}
	switch outcome.Kind {
	case patch.OutcomeSuccess:
		result["changesSummary"] = outcome.Changes.Summary()
		result["patchInfo"] = map[string]any{
			"oldVersion": outcome.CurrentVersion,
			"newVersion": outcome.NewVersion,
		}
	case patch.OutcomeConflict:
		metrics.ConflictsDetected.Inc()
		result["changesSummary"] = outcome.Changes.Summary()
		result["conflictDetails"] = map[string]any{
			"originalVersion": outcome.BaselineVersion,
			"currentVersion":  outcome.CurrentVersion,
			"message": fmt.Sprintf(
				"page moved from version %d to %d since it was read; re-read it or set forceUpdate",
				outcome.BaselineVersion, outcome.CurrentVersion),
		}
	case patch.OutcomeNoChanges:
		metrics.NoOpWritesSuppressed.Inc()
		result["currentVersion"] = outcome.CurrentVersion
		result["message"] = "page already matches the requested content; nothing written"
	}

	return result, nil
}

func (s *Server) handleAttachments(ctx context.Context, args map[string]any) (any, error) {
	pageID, err := requireString(args, "pageId")
	if err != nil {
		return nil, err
	}

	attachments, err := s.client.ListAttachments(ctx, pageID)
	if err != nil {
		return nil, s.remoteFailure("wiki_attachments", err)
	}

	attachmentID := getString(args, "attachmentId", "")
	if attachmentID == "" {
		return map[string]any{
			"attachments": attachments,
			"count":       len(attachments),
		}, nil
	}

	for _, att := range attachments {
		if att.ID != attachmentID {
			continue
		}
		var buf bytes.Buffer
		if _, err := s.client.DownloadAttachment(ctx, att, &buf); err != nil {
			return nil, s.remoteFailure("wiki_attachments", err)
		}
		return map[string]any{
			"id":            att.ID,
			"title":         att.Title,
			"mediaType":     att.MediaType,
			"size":          buf.Len(),
			"contentBase64": base64.StdEncoding.EncodeToString(buf.Bytes()),
		}, nil
	}

	return nil, &patch.ValidationError{Field: "attachmentId", Reason: fmt.Sprintf("no attachment %s on page %s", attachmentID, pageID)}
}

func (s *Server) handleExport(ctx context.Context, args map[string]any) (any, error) {
	pageID, err := requireString(args, "pageId")
	if err != nil {
		return nil, err
	}

	dir := getString(args, "dir", s.config.ExportDir)
	maxPages := getInt(args, "maxPages", s.config.ExportMaxPages)

	exporter, err := export.NewExporter(s.client, export.Options{Dir: dir, MaxPages: maxPages})
	if err != nil {
		return nil, err
	}

	report, err := exporter.Run(ctx, pageID)
	if err != nil {
		return nil, s.remoteFailure("wiki_export", err)
	}
	return report, nil
}

// remoteFailure counts wiki store failures before passing them through.
func (s *Server) remoteFailure(tool string, err error) error {
	var remote *wiki.RemoteError
	if errors.As(err, &remote) {
		metrics.RemoteErrors.WithLabelValues(tool).Inc()
	}
	return err
}
