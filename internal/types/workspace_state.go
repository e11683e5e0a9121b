package types

import "time"

// WorkspaceTab is the persisted descriptor of one open tab, enough to
// reopen the document in a later session. Content is never persisted here;
// it is reloaded from disk on restore.
type WorkspaceTab struct {
	FilePath    string      `json:"file_path"`
	ContentType ContentType `json:"content_type"`
	Title       string      `json:"title,omitempty"`
	Active      bool        `json:"active,omitempty"`
}

type WorkspaceState struct {
	Tabs    []WorkspaceTab `json:"tabs,omitempty"`
	SavedAt time.Time      `json:"saved_at"`
}

func CloneWorkspaceState(in *WorkspaceState) *WorkspaceState {
	if in == nil {
		return nil
	}
	out := *in
	if in.Tabs != nil {
		out.Tabs = append([]WorkspaceTab{}, in.Tabs...)
	}
	return &out
}
