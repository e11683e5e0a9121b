package daemon

import (
	"context"
	"strings"

	"folio/internal/types"
)

// WorkspaceService persists which tabs a UI had open so a restart can
// put them back. The stored shape is deliberately small: paths and
// content types, never document content.
type WorkspaceService struct {
	states WorkspaceStateStore
}

func NewWorkspaceService(stores *Stores) *WorkspaceService {
	service := &WorkspaceService{}
	if stores != nil {
		service.states = stores.WorkspaceState
	}
	return service
}

func (s *WorkspaceService) Load(ctx context.Context) (*types.WorkspaceState, error) {
	if s.states == nil {
		return nil, unavailableError("workspace state store not available", nil)
	}
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, unavailableError("load workspace state", err)
	}
	return state, nil
}

func (s *WorkspaceService) Save(ctx context.Context, state *types.WorkspaceState) (*types.WorkspaceState, error) {
	if s.states == nil {
		return nil, unavailableError("workspace state store not available", nil)
	}
	if state == nil {
		return nil, invalidError("workspace state payload is required", nil)
	}
	normalized := normalizeWorkspaceState(state)
	if err := s.states.Save(ctx, normalized); err != nil {
		return nil, unavailableError("save workspace state", err)
	}
	return normalized, nil
}

// normalizeWorkspaceState drops tabs without a path and keeps at most
// one tab marked active.
func normalizeWorkspaceState(in *types.WorkspaceState) *types.WorkspaceState {
	out := &types.WorkspaceState{SavedAt: in.SavedAt}
	sawActive := false
	for _, tab := range in.Tabs {
		tab.FilePath = strings.TrimSpace(tab.FilePath)
		if tab.FilePath == "" {
			continue
		}
		if contentType, ok := types.NormalizeContentType(tab.ContentType); ok {
			tab.ContentType = contentType
		} else {
			tab.ContentType = types.ContentTypeForPath(tab.FilePath)
		}
		if tab.Active {
			if sawActive {
				tab.Active = false
			}
			sawActive = true
		}
		out.Tabs = append(out.Tabs, tab)
	}
	return out
}
