package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"folio/internal/types"
)

type UpdateCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	stdin     io.Reader
	newClient clientFactory
}

func NewUpdateCommand(stdout, stderr io.Writer, stdin io.Reader, newClient clientFactory) *UpdateCommand {
	return &UpdateCommand{
		stdout:    stdout,
		stderr:    stderr,
		stdin:     stdin,
		newClient: newClient,
	}
}

func (c *UpdateCommand) Run(args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	op := fs.String("op", "write", "update operation: write|delete")
	from := fs.String("from", "", "read content from a local file instead of stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("update requires a document path")
	}
	path, err := absDocumentPath(fs.Arg(0))
	if err != nil {
		return err
	}

	normalized, ok := types.NormalizeUpdateOp(types.UpdateOp(*op))
	if !ok {
		return errors.New("invalid op: must be write or delete")
	}

	update := types.ContentUpdate{FilePath: path, Op: normalized}
	if normalized == types.UpdateOpWrite {
		content, err := readContent(c.stdin, *from)
		if err != nil {
			return err
		}
		update.Content = content
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	if err := client.EnsureDaemon(ctx); err != nil {
		return err
	}
	resp, err := client.PostUpdate(ctx, update)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "delivered to %d clients\n", resp.Delivered)
	return nil
}
