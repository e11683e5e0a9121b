package config

import (
	"errors"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultDaemonAddress = "127.0.0.1:7767"

// defaultPreviewDebounce is how long a burst of stream updates for one
// file is allowed to settle before the preview re-renders.
const defaultPreviewDebounce = 500 * time.Millisecond

type CoreConfig struct {
	Daemon  CoreDaemonConfig  `toml:"daemon"`
	Logging CoreLoggingConfig `toml:"logging"`
	Preview CorePreviewConfig `toml:"preview"`
	Debug   CoreDebugConfig   `toml:"debug"`
}

type CoreDaemonConfig struct {
	Address string `toml:"address"`
}

type CoreLoggingConfig struct {
	Level string `toml:"level"`
}

type CorePreviewConfig struct {
	DebounceMS int `toml:"debounce_ms"`
}

type CoreDebugConfig struct {
	StreamDebug bool `toml:"stream_debug"`
}

func DefaultCoreConfig() CoreConfig {
	return CoreConfig{
		Daemon: CoreDaemonConfig{
			Address: defaultDaemonAddress,
		},
		Logging: CoreLoggingConfig{
			Level: "info",
		},
	}
}

func LoadCoreConfig() (CoreConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return CoreConfig{}, err
	}
	return loadCoreConfigFromPath(path)
}

func (c CoreConfig) DaemonAddress() string {
	addr := strings.TrimSpace(c.Daemon.Address)
	if addr == "" {
		return defaultDaemonAddress
	}
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimPrefix(addr, "https://")
	addr = strings.TrimRight(addr, "/")
	if addr == "" {
		return defaultDaemonAddress
	}
	return addr
}

func (c CoreConfig) DaemonBaseURL() string {
	return "http://" + c.DaemonAddress()
}

func (c CoreConfig) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func (c CoreConfig) PreviewDebounce() time.Duration {
	if c.Preview.DebounceMS <= 0 {
		return defaultPreviewDebounce
	}
	return time.Duration(c.Preview.DebounceMS) * time.Millisecond
}

func (c CoreConfig) StreamDebugEnabled() bool {
	return c.Debug.StreamDebug
}

func loadCoreConfigFromPath(path string) (CoreConfig, error) {
	cfg := DefaultCoreConfig()
	if err := readTOML(path, &cfg); err != nil {
		return CoreConfig{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
