package daemon

import (
	"encoding/json"
	"net/http"

	"folio/internal/types"
)

func (a *API) Workspace(w http.ResponseWriter, r *http.Request) {
	service := NewWorkspaceService(a.Stores)
	switch r.Method {
	case http.MethodGet:
		state, err := service.Load(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	case http.MethodPut:
		var req types.WorkspaceState
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
			return
		}
		state, err := service.Save(r.Context(), &req)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}
