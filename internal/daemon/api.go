package daemon

import (
	"context"

	"folio/internal/logging"
	"folio/internal/types"
)

type API struct {
	Version  string
	Stores   *Stores
	Hub      *updateHub
	Shutdown func(context.Context) error
	Logger   logging.Logger
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
