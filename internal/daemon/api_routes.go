package daemon

import "net/http"

func (a *API) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", a.Health)
	mux.HandleFunc("/v1/documents", a.Documents)
	mux.HandleFunc("/v1/updates", a.Updates)
	mux.HandleFunc("/v1/updates/stream", a.UpdatesStream)
	mux.HandleFunc("/v1/snapshots", a.Snapshots)
	mux.HandleFunc("/v1/snapshots/", a.SnapshotByID)
	mux.HandleFunc("/v1/workspace", a.Workspace)
	mux.HandleFunc("/v1/shutdown", a.ShutdownDaemon)
}
