package client

import (
	"context"

	"folio/internal/types"
)

// Gateway adapts the daemon API to the tab engine's persistence port.
// The engine never issues HTTP itself; everything it knows about saving
// and history goes through this adapter.
type Gateway struct {
	client *Client
}

func NewGateway(c *Client) *Gateway {
	return &Gateway{client: c}
}

func (g *Gateway) Save(ctx context.Context, path, content string) (bool, error) {
	resp, err := g.client.SaveDocument(ctx, path, content)
	if err != nil {
		return false, err
	}
	return resp.OK, nil
}

func (g *Gateway) LoadHistory(ctx context.Context, path string) ([]types.Snapshot, error) {
	list, err := g.client.ListSnapshots(ctx, path)
	if err != nil {
		return nil, err
	}
	out := make([]types.Snapshot, 0, len(list))
	for _, snap := range list {
		if snap != nil {
			out = append(out, *snap)
		}
	}
	return out, nil
}

func (g *Gateway) RestoreSnapshot(ctx context.Context, id string) (string, error) {
	snap, err := g.client.GetSnapshot(ctx, id)
	if err != nil {
		return "", err
	}
	return snap.Content, nil
}
