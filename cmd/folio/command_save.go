package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
)

type SaveCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	stdin     io.Reader
	newClient clientFactory
}

func NewSaveCommand(stdout, stderr io.Writer, stdin io.Reader, newClient clientFactory) *SaveCommand {
	return &SaveCommand{
		stdout:    stdout,
		stderr:    stderr,
		stdin:     stdin,
		newClient: newClient,
	}
}

func (c *SaveCommand) Run(args []string) error {
	fs := flag.NewFlagSet("save", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	from := fs.String("from", "", "read content from a local file instead of stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("save requires a document path")
	}
	path, err := absDocumentPath(fs.Arg(0))
	if err != nil {
		return err
	}

	content, err := readContent(c.stdin, *from)
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
	resp, err := client.SaveDocument(ctx, path, content)
	if err != nil {
		return err
	}
	if resp.Snapshot != nil {
		fmt.Fprintf(c.stdout, "saved %s (snapshot %s)\n", path, resp.Snapshot.ID)
		return nil
	}
	fmt.Fprintf(c.stdout, "saved %s\n", path)
	return nil
}
