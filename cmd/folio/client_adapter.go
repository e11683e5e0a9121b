package main

import (
	"context"
	"time"

	"folio/internal/app"
	folioclient "folio/internal/client"
	"folio/internal/config"
	"folio/internal/types"
)

type clientFactory func() (commandClient, error)

type commandClient interface {
	EnsureDaemon(ctx context.Context) error
	EnsureDaemonVersion(ctx context.Context, expectedVersion string, restart bool) error
	LoadDocument(ctx context.Context, path string) (*types.Document, error)
	SaveDocument(ctx context.Context, path, content string) (*folioclient.SaveDocumentResponse, error)
	ListSnapshots(ctx context.Context, path string) ([]*types.Snapshot, error)
	GetSnapshot(ctx context.Context, id string) (*types.Snapshot, error)
	PostUpdate(ctx context.Context, update types.ContentUpdate) (*folioclient.PostUpdateResponse, error)
	ShutdownDaemon(ctx context.Context) error
	Health(ctx context.Context) (*folioclient.HealthResponse, error)
	RunUI(openPath string, restoreWorkspace bool) error
}

type folioClientAdapter struct {
	client   *folioclient.Client
	debounce time.Duration
}

func newFolioClient() (commandClient, error) {
	cfg, err := config.LoadCoreConfig()
	if err != nil {
		return nil, err
	}
	client, err := folioclient.New()
	if err != nil {
		return nil, err
	}
	return &folioClientAdapter{
		client:   client,
		debounce: cfg.PreviewDebounce(),
	}, nil
}

func (c *folioClientAdapter) EnsureDaemon(ctx context.Context) error {
	return c.client.EnsureDaemon(ctx)
}

func (c *folioClientAdapter) EnsureDaemonVersion(ctx context.Context, expectedVersion string, restart bool) error {
	return c.client.EnsureDaemonVersion(ctx, expectedVersion, restart)
}

func (c *folioClientAdapter) LoadDocument(ctx context.Context, path string) (*types.Document, error) {
	return c.client.LoadDocument(ctx, path)
}

func (c *folioClientAdapter) SaveDocument(ctx context.Context, path, content string) (*folioclient.SaveDocumentResponse, error) {
	return c.client.SaveDocument(ctx, path, content)
}

func (c *folioClientAdapter) ListSnapshots(ctx context.Context, path string) ([]*types.Snapshot, error) {
	return c.client.ListSnapshots(ctx, path)
}

func (c *folioClientAdapter) GetSnapshot(ctx context.Context, id string) (*types.Snapshot, error) {
	return c.client.GetSnapshot(ctx, id)
}

func (c *folioClientAdapter) PostUpdate(ctx context.Context, update types.ContentUpdate) (*folioclient.PostUpdateResponse, error) {
	return c.client.PostUpdate(ctx, update)
}

func (c *folioClientAdapter) ShutdownDaemon(ctx context.Context) error {
	return c.client.ShutdownDaemon(ctx)
}

func (c *folioClientAdapter) Health(ctx context.Context) (*folioclient.HealthResponse, error) {
	return c.client.Health(ctx)
}

func (c *folioClientAdapter) RunUI(openPath string, restoreWorkspace bool) error {
	var opts []app.ModelOption
	if openPath != "" {
		opts = append(opts, app.WithOpenPath(openPath))
	}
	if !restoreWorkspace {
		opts = append(opts, app.WithoutWorkspaceRestore())
	}
	return app.Run(c.client, c.debounce, opts...)
}
