package tabs

import (
	"context"

	"folio/internal/types"
)

// Gateway is the engine's only asynchronous boundary: persistence and the
// external snapshot history service. The engine never touches the
// filesystem itself.
type Gateway interface {
	Save(ctx context.Context, path, content string) (bool, error)
	LoadHistory(ctx context.Context, path string) ([]types.Snapshot, error)
	RestoreSnapshot(ctx context.Context, id string) (string, error)
}
