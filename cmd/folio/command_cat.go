package main

import (
	"context"
	"errors"
	"flag"
	"io"
)

type CatCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewCatCommand(stdout, stderr io.Writer, newClient clientFactory) *CatCommand {
	return &CatCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *CatCommand) Run(args []string) error {
	fs := flag.NewFlagSet("cat", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("cat requires a document path")
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
	doc, err := client.LoadDocument(ctx, path)
	if err != nil {
		return err
	}
	_, err = io.WriteString(c.stdout, doc.Content)
	return err
}
