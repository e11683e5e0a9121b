package daemon

import (
	"encoding/json"
	"net/http"

	"folio/internal/logging"
)

func (a *API) Documents(w http.ResponseWriter, r *http.Request) {
	service := NewDocumentService(a.Stores, a.Logger)
	switch r.Method {
	case http.MethodGet:
		doc, err := service.Load(r.Context(), r.URL.Query().Get("path"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	case http.MethodPut:
		var req SaveDocumentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
			return
		}
		snapshot, err := service.Save(r.Context(), req.FilePath, req.Content)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if a.Logger != nil {
			a.Logger.Info("document_saved",
				logging.F("path", req.FilePath),
				logging.F("bytes", len(req.Content)),
			)
		}
		writeJSON(w, http.StatusOK, SaveDocumentResponse{OK: true, Snapshot: snapshot})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}
