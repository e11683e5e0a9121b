package main

import (
	"flag"
	"fmt"
	"io"
)

type VersionCommand struct {
	stdout  io.Writer
	stderr  io.Writer
	version string
}

func NewVersionCommand(stdout, stderr io.Writer, version string) *VersionCommand {
	return &VersionCommand{
		stdout:  stdout,
		stderr:  stderr,
		version: version,
	}
}

func (c *VersionCommand) Run(args []string) error {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "folio %s\n", c.version)
	return nil
}
