package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"folio/internal/types"
)

func TestClientPostUpdate(t *testing.T) {
	var seenMethod, seenPath string
	var seenBody types.ContentUpdate
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenMethod = r.Method
		seenPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&seenBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(PostUpdateResponse{OK: true, Delivered: 1})
	}))
	defer server.Close()

	resp, err := newTestClient(server).PostUpdate(context.Background(), types.ContentUpdate{
		FilePath: "/ws/readme.md",
		Content:  "# Hi there",
		Op:       types.UpdateOpWrite,
	})
	if err != nil {
		t.Fatalf("PostUpdate: %v", err)
	}
	if seenMethod != http.MethodPost || seenPath != "/v1/updates" {
		t.Fatalf("unexpected request: %s %s", seenMethod, seenPath)
	}
	if seenBody.FilePath != "/ws/readme.md" || seenBody.Op != types.UpdateOpWrite {
		t.Fatalf("unexpected body: %+v", seenBody)
	}
	if !resp.OK || resp.Delivered != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestClientWorkspaceRoundTrip(t *testing.T) {
	var seenMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(types.WorkspaceState{
				Tabs: []types.WorkspaceTab{{FilePath: "/ws/readme.md", Active: true}},
			})
		case http.MethodPut:
			var state types.WorkspaceState
			_ = json.NewDecoder(r.Body).Decode(&state)
			_ = json.NewEncoder(w).Encode(state)
		}
	}))
	defer server.Close()

	c := newTestClient(server)
	state, err := c.LoadWorkspace(context.Background())
	if err != nil {
		t.Fatalf("LoadWorkspace: %v", err)
	}
	if len(state.Tabs) != 1 || !state.Tabs[0].Active {
		t.Fatalf("unexpected state: %+v", state)
	}

	saved, err := c.SaveWorkspace(context.Background(), state)
	if err != nil {
		t.Fatalf("SaveWorkspace: %v", err)
	}
	if seenMethod != http.MethodPut {
		t.Fatalf("expected PUT, got %s", seenMethod)
	}
	if len(saved.Tabs) != 1 {
		t.Fatalf("unexpected saved state: %+v", saved)
	}
}

func TestClientLoadWorkspaceMissingIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	}))
	defer server.Close()

	state, err := newTestClient(server).LoadWorkspace(context.Background())
	if err != nil {
		t.Fatalf("LoadWorkspace: %v", err)
	}
	if state == nil || len(state.Tabs) != 0 {
		t.Fatalf("expected empty state, got %+v", state)
	}
}
