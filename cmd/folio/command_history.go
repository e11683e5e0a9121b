package main

import (
	"context"
	"errors"
	"flag"
	"io"
)

type HistoryCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewHistoryCommand(stdout, stderr io.Writer, newClient clientFactory) *HistoryCommand {
	return &HistoryCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *HistoryCommand) Run(args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("history requires a document path")
	}
	path, err := absDocumentPath(fs.Arg(0))
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	if err := client.EnsureDaemon(ctx); err != nil {
		return err
	}
	snapshots, err := client.ListSnapshots(ctx, path)
	if err != nil {
		return err
	}

	printSnapshots(c.stdout, snapshots)
	return nil
}
