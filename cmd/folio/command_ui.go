package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"

	"folio/internal/config"
)

type UICommand struct {
	stderr             io.Writer
	newClient          clientFactory
	configureUILogging func()
	version            string
}

func NewUICommand(stderr io.Writer, newClient clientFactory, configureUILogging func(), version string) *UICommand {
	return &UICommand{
		stderr:             stderr,
		newClient:          newClient,
		configureUILogging: configureUILogging,
		version:            version,
	}
}

func (c *UICommand) Run(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	openPath := fs.String("open", "", "open the given document on startup")
	noRestore := fs.Bool("no-restore", false, "skip restoring the previous session's tabs")
	restartDaemon := fs.Bool("restart-daemon", false, "restart daemon if version mismatch")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return c.launch(*openPath, *noRestore, *restartDaemon)
}

func (c *UICommand) launch(openPath string, noRestore, restartDaemon bool) error {
	resolvedOpen := ""
	if openPath != "" {
		resolved, err := absDocumentPath(openPath)
		if err != nil {
			return err
		}
		resolvedOpen = resolved
	}

	if c.configureUILogging != nil {
		c.configureUILogging()
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	if err := client.EnsureDaemonVersion(ctx, c.version, restartDaemon); err != nil {
		return err
	}
	return client.RunUI(resolvedOpen, !noRestore)
}

// OpenCommand is shorthand for `ui --open <path>`.
type OpenCommand struct {
	stderr io.Writer
	ui     *UICommand
}

func NewOpenCommand(stderr io.Writer, newClient clientFactory, configureUILogging func(), version string) *OpenCommand {
	return &OpenCommand{
		stderr: stderr,
		ui:     NewUICommand(stderr, newClient, configureUILogging, version),
	}
}

func (c *OpenCommand) Run(args []string) error {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	noRestore := fs.Bool("no-restore", false, "skip restoring the previous session's tabs")
	restartDaemon := fs.Bool("restart-daemon", false, "restart daemon if version mismatch")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("open requires a document path")
	}
	return c.ui.launch(fs.Arg(0), *noRestore, *restartDaemon)
}

func configureUILogging() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logPath, err := config.UILogPath()
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
		return
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return
	}
	log.SetOutput(file)
}
