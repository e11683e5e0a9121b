package types

import "strings"

type UpdateOp string

const (
	UpdateOpWrite  UpdateOp = "write"
	UpdateOpDelete UpdateOp = "delete"
)

func NormalizeUpdateOp(raw UpdateOp) (UpdateOp, bool) {
	switch UpdateOp(strings.ToLower(strings.TrimSpace(string(raw)))) {
	case UpdateOpWrite, "":
		return UpdateOpWrite, true
	case UpdateOpDelete:
		return UpdateOpDelete, true
	default:
		return "", false
	}
}

// ContentUpdate is one file-change notification from the external watcher,
// delivered to clients over the update stream.
type ContentUpdate struct {
	FilePath string   `json:"file_path"`
	Content  string   `json:"content,omitempty"`
	Op       UpdateOp `json:"op"`
}
