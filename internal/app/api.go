package app

import (
	"context"

	"folio/internal/client"
	"folio/internal/types"
)

type DocumentAPI interface {
	LoadDocument(ctx context.Context, path string) (*types.Document, error)
}

type WorkspaceAPI interface {
	LoadWorkspace(ctx context.Context) (*types.WorkspaceState, error)
	SaveWorkspace(ctx context.Context, state *types.WorkspaceState) (*types.WorkspaceState, error)
}

type StreamAPI interface {
	UpdatesStream(ctx context.Context) (<-chan types.ContentUpdate, func(), error)
}

// ClientAPI adapts the daemon client to the narrow interfaces the UI
// consumes, so tests can substitute fakes per concern.
type ClientAPI struct {
	client *client.Client
}

func NewClientAPI(client *client.Client) *ClientAPI {
	return &ClientAPI{client: client}
}

func (a *ClientAPI) LoadDocument(ctx context.Context, path string) (*types.Document, error) {
	return a.client.LoadDocument(ctx, path)
}

func (a *ClientAPI) LoadWorkspace(ctx context.Context) (*types.WorkspaceState, error) {
	return a.client.LoadWorkspace(ctx)
}

func (a *ClientAPI) SaveWorkspace(ctx context.Context, state *types.WorkspaceState) (*types.WorkspaceState, error) {
	return a.client.SaveWorkspace(ctx, state)
}

func (a *ClientAPI) UpdatesStream(ctx context.Context) (<-chan types.ContentUpdate, func(), error) {
	return a.client.UpdatesStream(ctx)
}
