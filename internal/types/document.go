package types

import "time"

// Document is the daemon's load response for one file on disk.
type Document struct {
	FilePath    string      `json:"file_path"`
	Content     string      `json:"content"`
	ContentType ContentType `json:"content_type"`
	Size        int64       `json:"size"`
	ModTime     time.Time   `json:"mod_time"`
}
