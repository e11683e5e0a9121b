package daemon

import (
	"encoding/json"
	"net/http"
	"net/url"
	"path/filepath"
	"testing"

	"folio/internal/types"
)

func saveTestDocument(t *testing.T, serverURL, path, content string) *types.Snapshot {
	t.Helper()
	body, _ := json.Marshal(SaveDocumentRequest{FilePath: path, Content: content})
	resp, err := http.DefaultClient.Do(authedRequest(t, http.MethodPut, serverURL+"/v1/documents", body))
	if err != nil {
		t.Fatalf("save document: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var saved SaveDocumentResponse
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		t.Fatalf("decode save: %v", err)
	}
	return saved.Snapshot
}

func TestSnapshotsListAndGet(t *testing.T) {
	server, _ := newTestServer(t, newTestStores(t))
	docPath := filepath.Join(t.TempDir(), "readme.md")

	saveTestDocument(t, server.URL, docPath, "v1")
	second := saveTestDocument(t, server.URL, docPath, "v2")
	if second == nil {
		t.Fatalf("expected snapshot from save")
	}

	listResp, err := http.DefaultClient.Do(authedRequest(t, http.MethodGet, server.URL+"/v1/snapshots?path="+url.QueryEscape(docPath), nil))
	if err != nil {
		t.Fatalf("list snapshots: %v", err)
	}
	defer listResp.Body.Close()
	if listResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", listResp.StatusCode)
	}
	var listPayload struct {
		Snapshots []*types.Snapshot `json:"snapshots"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&listPayload); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listPayload.Snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(listPayload.Snapshots))
	}
	if listPayload.Snapshots[0].ID != second.ID {
		t.Fatalf("expected newest first")
	}
	if listPayload.Snapshots[0].Content != "" {
		t.Fatalf("list must omit content")
	}

	getResp, err := http.DefaultClient.Do(authedRequest(t, http.MethodGet, server.URL+"/v1/snapshots/"+second.ID, nil))
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", getResp.StatusCode)
	}
	var snap types.Snapshot
	if err := json.NewDecoder(getResp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Content != "v2" {
		t.Fatalf("expected full content, got %q", snap.Content)
	}
}

func TestSnapshotsRequirePath(t *testing.T) {
	server, _ := newTestServer(t, newTestStores(t))

	resp, err := http.DefaultClient.Do(authedRequest(t, http.MethodGet, server.URL+"/v1/snapshots", nil))
	if err != nil {
		t.Fatalf("list snapshots: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSnapshotsGetMissing(t *testing.T) {
	server, _ := newTestServer(t, newTestStores(t))

	resp, err := http.DefaultClient.Do(authedRequest(t, http.MethodGet, server.URL+"/v1/snapshots/does-not-exist", nil))
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
