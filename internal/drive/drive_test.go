package drive

// Notes:
// - The Drive API is replaced by an httptest server; routes are matched on
//   method and path suffix so the test does not depend on the exact upload
//   prefix the generated client uses.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/api/option"
)

type fakeDrive struct {
	mu       sync.Mutex
	queries  []string
	uploaded []byte
	files    map[string][]byte
}

func (f *fakeDrive) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/files"):
		f.queries = append(f.queries, r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("pageToken") == "" {
			_, _ = io.WriteString(w, `{"nextPageToken":"p2","files":[{"id":"1","name":"a.pdf","size":"10"}]}`)
			return
		}
		_, _ = io.WriteString(w, `{"files":[{"id":"2","name":"b.pdf","size":"20"}]}`)

	case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/files/"):
		id := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		body, ok := f.files[id]
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":{"code":404,"message":"File not found"}}`)
			return
		}
		_, _ = w.Write(body)

	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/files"):
		f.uploaded, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "new-png"})

	default:
		http.Error(w, "unexpected "+r.Method+" "+r.URL.Path, http.StatusTeapot)
	}
}

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(context.Background(),
		option.WithEndpoint(srv.URL+"/drive/v3/"),
		option.WithHTTPClient(srv.Client()),
		option.WithoutAuthentication(),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

// ---------------------------------------------------------------------------
// TestListPDFs - Folder listing
// ---------------------------------------------------------------------------

func TestListPDFs(t *testing.T) {
	t.Parallel()

	fake := &fakeDrive{}
	c := newTestClient(t, fake)

	files, err := c.ListPDFs(context.Background(), "folder'1")
	if err != nil {
		t.Fatalf("ListPDFs() error = %v", err)
	}

	want := []File{{ID: "1", Name: "a.pdf", Size: 10}, {ID: "2", Name: "b.pdf", Size: 20}}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("ListPDFs() mismatch (-want +got):\n%s", diff)
	}

	if len(fake.queries) != 2 {
		t.Fatalf("list requests = %d, want 2 (one per page)", len(fake.queries))
	}
	q := fake.queries[0]
	for _, part := range []string{`'folder\'1' in parents`, "mimeType = 'application/pdf'", "trashed = false"} {
		if !strings.Contains(q, part) {
			t.Errorf("query %q missing %q", q, part)
		}
	}
}

// ---------------------------------------------------------------------------
// TestDownload - Media download
// ---------------------------------------------------------------------------

func TestDownload(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, &fakeDrive{files: map[string][]byte{"abc": []byte("%PDF-1.4 body")}})

	var buf bytes.Buffer
	if err := c.Download(context.Background(), "abc", &buf); err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if buf.String() != "%PDF-1.4 body" {
		t.Errorf("Download() = %q, want PDF body", buf.String())
	}
}

func TestDownload_NotFound(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, &fakeDrive{files: map[string][]byte{}})

	err := c.Download(context.Background(), "missing", io.Discard)
	if !errors.Is(err, ErrDrive) {
		t.Errorf("Download() error = %v, want ErrDrive", err)
	}
}

// ---------------------------------------------------------------------------
// TestUploadPNG - Media upload
// ---------------------------------------------------------------------------

func TestUploadPNG(t *testing.T) {
	t.Parallel()

	fake := &fakeDrive{}
	c := newTestClient(t, fake)

	id, err := c.UploadPNG(context.Background(), "report.png", "out-folder", strings.NewReader("\x89PNG fake"))
	if err != nil {
		t.Fatalf("UploadPNG() error = %v", err)
	}
	if id != "new-png" {
		t.Errorf("UploadPNG() id = %q, want new-png", id)
	}

	body := string(fake.uploaded)
	for _, part := range []string{`"name":"report.png"`, `"out-folder"`, "image/png", "\x89PNG fake"} {
		if !strings.Contains(body, part) {
			t.Errorf("upload body missing %q", part)
		}
	}
}

func TestEscapeQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"it's", `it\'s`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeQuery(tt.in); got != tt.want {
			t.Errorf("escapeQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
