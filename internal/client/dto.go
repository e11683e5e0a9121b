package client

import "folio/internal/types"

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
	PID     int    `json:"pid"`
	Streams int    `json:"streams"`
}

type SaveDocumentRequest struct {
	FilePath string `json:"file_path"`
	Content  string `json:"content"`
}

type SaveDocumentResponse struct {
	OK       bool            `json:"ok"`
	Snapshot *types.Snapshot `json:"snapshot,omitempty"`
}

type PostUpdateResponse struct {
	OK        bool `json:"ok"`
	Delivered int  `json:"delivered"`
}

type SnapshotsResponse struct {
	Snapshots []*types.Snapshot `json:"snapshots"`
}
