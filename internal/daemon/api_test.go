package daemon

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"folio/internal/store"
)

type healthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
	PID     int    `json:"pid"`
	Streams int    `json:"streams"`
}

func newTestStores(t *testing.T) *Stores {
	t.Helper()
	repo, err := store.OpenRepository(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() {
		_ = repo.Close()
	})
	return &Stores{
		Snapshots:      repo.Snapshots(),
		WorkspaceState: repo.WorkspaceState(),
	}
}

func newTestServer(t *testing.T, stores *Stores) (*httptest.Server, *API) {
	t.Helper()
	api := &API{
		Version: "test",
		Stores:  stores,
		Hub:     newUpdateHub(),
	}
	mux := http.NewServeMux()
	api.RegisterRoutes(mux)
	server := httptest.NewServer(TokenAuthMiddleware("token", mux))
	t.Cleanup(server.Close)
	return server, api
}

func authedRequest(t *testing.T, method, url string, body []byte) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHealth(t *testing.T) {
	recorder := httptest.NewRecorder()
	api := &API{Version: "test-version"}

	api.Health(recorder, httptest.NewRequest("GET", "/health", nil))

	var resp healthResponse
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if !resp.OK {
		t.Fatalf("expected ok=true")
	}
	if resp.Version != "test-version" {
		t.Fatalf("expected version 'test-version', got %q", resp.Version)
	}
	if resp.PID <= 0 {
		t.Fatalf("expected pid to be positive, got %d", resp.PID)
	}
	if resp.Streams != 0 {
		t.Fatalf("expected no streams without a hub, got %d", resp.Streams)
	}
}

func TestHealthReportsConnectedStreams(t *testing.T) {
	hub := newUpdateHub()
	_, cancel := hub.Add()
	defer cancel()
	recorder := httptest.NewRecorder()
	api := &API{Version: "test-version", Hub: hub}

	api.Health(recorder, httptest.NewRequest("GET", "/health", nil))

	var resp healthResponse
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if resp.Streams != 1 {
		t.Fatalf("expected 1 stream, got %d", resp.Streams)
	}
}
