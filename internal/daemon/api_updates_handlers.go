package daemon

import (
	"encoding/json"
	"net/http"
	"strings"

	"folio/internal/logging"
	"folio/internal/types"
)

// Updates ingests a content update from an external writer, typically
// an agent that just rewrote a file, and fans it out to every
// subscribed UI.
func (a *API) Updates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if a.Hub == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "update stream not available"})
		return
	}
	var update types.ContentUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}
	update.FilePath = strings.TrimSpace(update.FilePath)
	if update.FilePath == "" {
		writeServiceError(w, invalidError("file_path is required", nil))
		return
	}
	op, ok := types.NormalizeUpdateOp(update.Op)
	if !ok {
		writeServiceError(w, invalidError("unknown op", nil))
		return
	}
	update.Op = op

	delivered := a.Hub.Broadcast(update)
	if a.Logger != nil && a.Logger.Enabled(logging.Debug) {
		a.Logger.Debug("update_ingested",
			logging.F("path", update.FilePath),
			logging.F("op", string(update.Op)),
			logging.F("bytes", len(update.Content)),
			logging.F("delivered", delivered),
		)
	}
	writeJSON(w, http.StatusOK, PostUpdateResponse{OK: true, Delivered: delivered})
}

func (a *API) UpdatesStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if a.Hub == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "update stream not available"})
		return
	}
	reqID := logging.NewRequestID()
	if a.Logger != nil && a.Logger.Enabled(logging.Debug) {
		a.Logger.Debug("updates_stream_open", logging.F("req_id", reqID))
	}
	ch, cancel := a.Hub.Add()
	defer cancel()

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	_, _ = w.Write([]byte(":\n\n"))
	flusher.Flush()

	ctx := r.Context()
	var count int
	reason := "unknown"
	defer func() {
		if a.Logger != nil && a.Logger.Enabled(logging.Debug) {
			a.Logger.Debug("updates_stream_close",
				logging.F("req_id", reqID),
				logging.F("count", count),
				logging.F("reason", reason),
			)
		}
	}()
	for {
		select {
		case <-ctx.Done():
			reason = "ctx_done"
			return
		case update, ok := <-ch:
			if !ok {
				reason = "channel_closed"
				return
			}
			count++
			data, err := json.Marshal(update)
			if err != nil {
				continue
			}
			_, _ = w.Write([]byte("data: "))
			_, _ = w.Write(data)
			_, _ = w.Write([]byte("\n\n"))
			flusher.Flush()
		}
	}
}
