package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"runtime"
	"strings"
	"syscall"
	"time"

	"folio/internal/config"
	"folio/internal/types"
)

type Client struct {
	baseURL     string
	tokenPath   string
	token       string
	streamDebug bool
	http        *http.Client
}

func New() (*Client, error) {
	cfg, err := config.LoadCoreConfig()
	if err != nil {
		return nil, err
	}
	tokenPath, err := config.TokenPath()
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:     cfg.DaemonBaseURL(),
		tokenPath:   tokenPath,
		streamDebug: cfg.StreamDebugEnabled(),
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	_ = c.loadToken()
	return c, nil
}

func NewWithBaseURL(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) LoadDocument(ctx context.Context, path string) (*types.Document, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("path is required")
	}
	var doc types.Document
	if err := c.doJSON(ctx, http.MethodGet, "/v1/documents?path="+url.QueryEscape(path), nil, true, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) SaveDocument(ctx context.Context, path, content string) (*SaveDocumentResponse, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("path is required")
	}
	req := SaveDocumentRequest{FilePath: path, Content: content}
	var resp SaveDocumentResponse
	if err := c.doJSON(ctx, http.MethodPut, "/v1/documents", req, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) PostUpdate(ctx context.Context, update types.ContentUpdate) (*PostUpdateResponse, error) {
	var resp PostUpdateResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/updates", update, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListSnapshots(ctx context.Context, path string) ([]*types.Snapshot, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("path is required")
	}
	var resp SnapshotsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/snapshots?path="+url.QueryEscape(path), nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Snapshots, nil
}

func (c *Client) GetSnapshot(ctx context.Context, id string) (*types.Snapshot, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("snapshot id is required")
	}
	var snap types.Snapshot
	if err := c.doJSON(ctx, http.MethodGet, "/v1/snapshots/"+url.PathEscape(id), nil, true, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) LoadWorkspace(ctx context.Context) (*types.WorkspaceState, error) {
	var state types.WorkspaceState
	if err := c.doJSON(ctx, http.MethodGet, "/v1/workspace", nil, true, &state); err != nil {
		if apiErr := asAPIError(err); apiErr != nil && apiErr.StatusCode == http.StatusNotFound {
			return &types.WorkspaceState{}, nil
		}
		return nil, err
	}
	return &state, nil
}

func (c *Client) SaveWorkspace(ctx context.Context, state *types.WorkspaceState) (*types.WorkspaceState, error) {
	if state == nil {
		return nil, errors.New("state is required")
	}
	var resp types.WorkspaceState
	if err := c.doJSON(ctx, http.MethodPut, "/v1/workspace", state, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) EnsureDaemon(ctx context.Context) error {
	return c.ensureDaemon(ctx, "", false)
}

func (c *Client) EnsureDaemonVersion(ctx context.Context, expectedVersion string, restart bool) error {
	return c.ensureDaemon(ctx, expectedVersion, restart)
}

func (c *Client) ShutdownDaemon(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/shutdown", nil, true, nil)
}

func (c *Client) ensureDaemon(ctx context.Context, expectedVersion string, restart bool) error {
	resp, err := c.Health(ctx)
	if err == nil && resp.OK {
		if expectedVersion == "" || resp.Version == expectedVersion {
			return nil
		}
		if !restart {
			return fmt.Errorf("daemon version mismatch: %s (expected %s)", resp.Version, expectedVersion)
		}
		if err := c.ShutdownDaemon(ctx); err != nil {
			apiErr := asAPIError(err)
			if apiErr == nil || apiErr.StatusCode != http.StatusNotFound {
				return err
			}
			if resp.PID <= 0 {
				return err
			}
			if killErr := killProcess(resp.PID); killErr != nil {
				return fmt.Errorf("failed to stop stale daemon (pid %d): %w", resp.PID, killErr)
			}
		}
		shutdownDeadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(shutdownDeadline) {
			if _, err := c.Health(ctx); err != nil {
				break
			}
			time.Sleep(100 * time.Millisecond)
		}
	}

	if err := StartBackgroundDaemon(); err != nil {
		return err
	}

	deadline := time.Now().Add(4 * time.Second)
	var lastErr error
	for time.Now().Before(deadline) {
		resp, err := c.Health(ctx)
		if err == nil && resp.OK {
			if expectedVersion == "" || resp.Version == expectedVersion {
				_ = c.loadToken()
				return nil
			}
			lastErr = fmt.Errorf("daemon version mismatch: %s (expected %s)", resp.Version, expectedVersion)
		} else {
			lastErr = err
		}
		time.Sleep(150 * time.Millisecond)
	}
	if lastErr == nil {
		lastErr = errors.New("daemon not healthy after start")
	}
	return lastErr
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, requireAuth bool, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requireAuth {
		if err := c.ensureToken(); err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	httpClient := c.http
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) ensureToken() error {
	if strings.TrimSpace(c.token) == "" {
		if err := c.loadToken(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.token) == "" {
		return errors.New("token not found; is the daemon running?")
	}
	return nil
}

func (c *Client) loadToken() error {
	if c.tokenPath == "" {
		return nil
	}
	data, err := os.ReadFile(c.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.token = ""
			return nil
		}
		return err
	}
	c.token = strings.TrimSpace(string(data))
	return nil
}

func decodeAPIError(resp *http.Response) error {
	type errorPayload struct {
		Error string `json:"error"`
	}
	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	if payload.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func asAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

var killProcess = terminateProcess

func terminateProcess(pid int) error {
	if pid <= 0 {
		return errors.New("invalid pid")
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	if runtime.GOOS == "windows" {
		return proc.Kill()
	}
	return proc.Signal(syscall.SIGTERM)
}
