package wiki

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		BaseURL:  srv.URL,
		Username: "bot@example.com",
		APIToken: "secret",
		SpaceKey: "ENG",
	})
	require.NoError(t, err)
	return client
}

func Test_Client_ConfigValidation(t *testing.T) {
	_, err := NewClient(Config{APIToken: "x"})
	require.Error(t, err, "missing base URL")

	_, err = NewClient(Config{BaseURL: "https://wiki.example.com"})
	require.Error(t, err, "missing token")
}

func Test_Client_FetchPage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/rest/api/content/12345", r.URL.Path)
		require.Equal(t, "body.storage,version,space", r.URL.Query().Get("expand"))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok, "basic auth expected")
		require.Equal(t, "bot@example.com", user)
		require.Equal(t, "secret", pass)

		json.NewEncoder(w).Encode(Page{
			ID:      "12345",
			Title:   "Runbook",
			Body:    Body{Storage: Storage{Value: "<p>hello</p>", Representation: "storage"}},
			Version: Version{Number: 7},
			Space:   Space{Key: "ENG"},
		})
	}))

	page, err := client.FetchPage(context.Background(), "12345")
	require.NoError(t, err)
	require.Equal(t, "Runbook", page.Title)
	require.Equal(t, 7, page.Version.Number)
	require.Equal(t, "<p>hello</p>", page.Body.Storage.Value)
}

func Test_Client_WritePage_VersionBump(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)

		var payload writePayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "page", payload.Type)
		require.Equal(t, "T", payload.Title)
		require.NotNil(t, payload.Version)
		require.Equal(t, 8, payload.Version.Number, "write must declare expected prior version + 1")
		require.Equal(t, "storage", payload.Body.Storage.Representation)

		json.NewEncoder(w).Encode(Page{ID: "12345", Title: "T", Version: Version{Number: 8}})
	}))

	page, err := client.WritePage(context.Background(), "12345", "T", "<p>new</p>", 7)
	require.NoError(t, err)
	require.Equal(t, 8, page.Version.Number)
}

func Test_Client_WritePage_StaleVersionRejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"statusCode":409,"message":"Version must be incremented on update"}`))
	}))

	_, err := client.WritePage(context.Background(), "12345", "T", "<p>new</p>", 3)
	require.Error(t, err)

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	require.Equal(t, http.StatusConflict, remote.StatusCode)
	require.Contains(t, remote.Message, "Version must be incremented")
}

func Test_Client_ErrorSentinels(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"not found", http.StatusNotFound, ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, ErrAuth},
		{"forbidden", http.StatusForbidden, ErrAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"message":"nope"}`))
			}))

			_, err := client.FetchPage(context.Background(), "1")
			require.True(t, errors.Is(err, tt.want), "expected %v in chain, got %v", tt.want, err)
		})
	}
}

func Test_Client_SearchPages(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/search", r.URL.Path)
		cql := r.URL.Query().Get("cql")
		require.Contains(t, cql, `text ~ "deploy \"prod\""`)
		require.Contains(t, cql, `space="ENG"`)
		require.Equal(t, "5", r.URL.Query().Get("limit"))

		w.Write([]byte(`{"results":[
			{"content":{"id":"1","title":"Deploy guide","_links":{"webui":"/x"}},"excerpt":"how to deploy"},
			{"content":{"id":"2","title":"Prod checklist"},"excerpt":""}
		]}`))
	}))

	results, err := client.SearchPages(context.Background(), `deploy "prod"`, 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "Deploy guide", results[0].Title)
	require.Equal(t, "/x", results[0].URL)
}

func Test_Client_ListChildren(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/content/9/child/page", r.URL.Path)
		w.Write([]byte(`{"results":[{"id":"10","title":"Child A","version":{"number":2}},{"id":"11","title":"Child B","version":{"number":1}}],"size":2}`))
	}))

	children, err := client.ListChildren(context.Background(), "9")
	require.NoError(t, err)
	require.Len(t, children, 2)
	require.Equal(t, "Child A", children[0].Title)
}

func Test_Client_Attachments(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/content/9/child/attachment", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"id":"att1","title":"diagram.png","metadata":{"mediaType":"image/png"},"extensions":{"fileSize":4},"_links":{"download":"/download/att1"}}]}`))
	})
	mux.HandleFunc("/download/att1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("PNG!"))
	})

	client := newTestClient(t, mux)

	atts, err := client.ListAttachments(context.Background(), "9")
	require.NoError(t, err)
	require.Len(t, atts, 1)
	require.Equal(t, "image/png", atts[0].MediaType)

	var buf bytes.Buffer
	n, err := client.DownloadAttachment(context.Background(), atts[0], &buf)
	require.NoError(t, err)
	require.EqualValues(t, 4, n)
	require.Equal(t, "PNG!", buf.String())
}
