package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
)

type RestoreCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewRestoreCommand(stdout, stderr io.Writer, newClient clientFactory) *RestoreCommand {
	return &RestoreCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *RestoreCommand) Run(args []string) error {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	save := fs.Bool("save", false, "save the restored content back to the document")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("restore requires a snapshot id")
	}
	id := fs.Arg(0)

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	if err := client.EnsureDaemon(ctx); err != nil {
		return err
	}
	snapshot, err := client.GetSnapshot(ctx, id)
	if err != nil {
		return err
	}

	if *save {
		if _, err := client.SaveDocument(ctx, snapshot.FilePath, snapshot.Content); err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "restored %s\n", snapshot.FilePath)
		return nil
	}
	_, err = io.WriteString(c.stdout, snapshot.Content)
	return err
}
