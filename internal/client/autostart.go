package client

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"folio/internal/config"
)

// StartBackgroundDaemon re-executes the current binary with
// `daemon --background`, detached from this process. Daemon output is
// appended to the shared daemon log when the data dir is writable.
func StartBackgroundDaemon() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}

	cmd := exec.Command(exe, "daemon", "--background")
	applyDaemonSysProcAttr(cmd)

	logWriter := io.Discard
	var logFile *os.File
	if logPath, err := config.DaemonLogPath(); err == nil {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err == nil {
			if file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
				logWriter = file
				logFile = file
			}
		}
	}
	cmd.Stdout = logWriter
	cmd.Stderr = logWriter

	err = cmd.Start()
	if logFile != nil {
		_ = logFile.Close()
	}
	return err
}
