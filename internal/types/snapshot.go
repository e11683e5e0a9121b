package types

import "time"

// Snapshot is one historical version of a saved file. List responses omit
// Content; Get returns it in full.
type Snapshot struct {
	ID       string    `json:"id"`
	FilePath string    `json:"file_path"`
	Content  string    `json:"content,omitempty"`
	Size     int       `json:"size"`
	Hash     string    `json:"hash"`
	SavedAt  time.Time `json:"saved_at"`
}

func CloneSnapshot(in *Snapshot) *Snapshot {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}
