package client

import (
	"bufio"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"folio/internal/types"
)

func streamDebugEnv() bool {
	return strings.TrimSpace(os.Getenv("FOLIO_STREAM_DEBUG")) == "1"
}

// streamDebugOn reports whether stream tracing is wanted, either through
// the env var or the `[debug] stream_debug` config key.
func (c *Client) streamDebugOn() bool {
	return c.streamDebug || streamDebugEnv()
}

var (
	streamLogger     *log.Logger
	streamLoggerOnce sync.Once
)

// streamDebugLogger opens the trace log lazily; callers gate on
// streamDebugOn so the file only appears when tracing is enabled.
func streamDebugLogger() *log.Logger {
	streamLoggerOnce.Do(func() {
		path := ""
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			path = filepath.Join(home, ".folio", "ui-stream.log")
		}
		if path == "" {
			path = filepath.Join(os.TempDir(), "folio-ui-stream.log")
		}
		_ = os.MkdirAll(filepath.Dir(path), 0o700)
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			streamLogger = log.New(os.Stderr, "ui-stream ", log.LstdFlags)
			return
		}
		streamLogger = log.New(file, "ui-stream ", log.LstdFlags)
	})
	return streamLogger
}

func streamLogf(format string, args ...any) {
	logger := streamDebugLogger()
	if logger == nil {
		return
	}
	logger.Printf(format, args...)
}

// UpdatesStream subscribes to the daemon's content update feed. The
// returned channel closes when the stream ends; call the cancel func to
// end it from this side.
func (c *Client) UpdatesStream(ctx context.Context) (<-chan types.ContentUpdate, func(), error) {
	if err := c.ensureToken(); err != nil {
		return nil, nil, err
	}

	debug := c.streamDebugOn()
	ctx, cancel := context.WithCancel(ctx)
	url := c.baseURL + "/v1/updates/stream"
	if debug {
		streamLogf("updates stream open url=%s", url)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "text/event-stream")

	// A fresh client without the default 10s timeout; the stream stays
	// open for the life of the UI.
	httpClient := &http.Client{}
	resp, err := httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		cancel()
		if debug {
			streamLogf("updates stream error status=%d", resp.StatusCode)
		}
		return nil, nil, decodeAPIError(resp)
	}

	ch := make(chan types.ContentUpdate, 256)
	go func() {
		defer close(ch)
		defer resp.Body.Close()

		start := time.Now()
		count := 0
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		var dataLines []string

		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				if len(dataLines) == 0 {
					continue
				}
				payload := strings.Join(dataLines, "\n")
				dataLines = dataLines[:0]
				var update types.ContentUpdate
				if err := json.Unmarshal([]byte(payload), &update); err == nil {
					select {
					case ch <- update:
					default:
					}
					count++
					if count == 1 && debug {
						streamLogf("updates stream first path=%s op=%s", update.FilePath, update.Op)
					}
				}
				continue
			}
			if strings.HasPrefix(line, "data:") {
				dataLines = append(dataLines, strings.TrimSpace(line[len("data:"):]))
			}
		}
		if err := scanner.Err(); err != nil && debug {
			streamLogf("updates stream scan error err=%v", err)
		}
		if debug {
			streamLogf("updates stream close count=%d dur=%s", count, time.Since(start))
		}
	}()

	return ch, cancel, nil
}
