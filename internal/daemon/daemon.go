package daemon

import (
	"context"
	"errors"
	"net/http"
	"time"

	"folio/internal/logging"
	"folio/internal/types"
)

// Daemon owns the host side of folio: document reads and atomic writes,
// per-file snapshot history, persisted workspace state, and the content
// update stream that connected UIs subscribe to.
type Daemon struct {
	addr    string
	token   string
	version string
	server  *http.Server
	stores  *Stores
	logger  logging.Logger
}

type Stores struct {
	Snapshots      SnapshotStore
	WorkspaceState WorkspaceStateStore
}

type SnapshotStore interface {
	Append(ctx context.Context, filePath, content string) (*types.Snapshot, error)
	ListByPath(ctx context.Context, filePath string) ([]*types.Snapshot, error)
	Get(ctx context.Context, id string) (*types.Snapshot, error)
}

type WorkspaceStateStore interface {
	Load(ctx context.Context) (*types.WorkspaceState, error)
	Save(ctx context.Context, state *types.WorkspaceState) error
}

func New(addr, token, version string, stores *Stores, logger logging.Logger) *Daemon {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Daemon{
		addr:    addr,
		token:   token,
		version: version,
		stores:  stores,
		logger:  logger,
	}
}

func (d *Daemon) Run(ctx context.Context) error {
	api := &API{
		Version: d.version,
		Stores:  d.stores,
		Hub:     newUpdateHub(),
		Logger:  d.logger,
	}

	mux := http.NewServeMux()
	api.RegisterRoutes(mux)

	handler := TokenAuthMiddleware(d.token, LoggingMiddleware(d.logger, mux))
	d.server = &http.Server{
		Addr:    d.addr,
		Handler: handler,
	}
	api.Shutdown = d.server.Shutdown

	errCh := make(chan error, 1)
	go func() {
		d.logger.Info("daemon_listening", logging.F("addr", d.addr))
		errCh <- d.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
