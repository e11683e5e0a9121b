package main

import (
	"fmt"
	"os"
)

const usageText = `folio is a document preview daemon and terminal client.

Usage:
  folio [command] [flags]

Running folio with no command starts the terminal client.

Commands:
  ui       run terminal client (default)
  open     open one document in the terminal client
  daemon   run background daemon
  cat      print a document through the daemon
  save     save a document from stdin
  history  list saved versions of a document
  restore  print (or re-save) a saved version
  update   post a content update to the stream
  kill     stop the background daemon
  config   print configuration (effective or defaults)
  version  print the folio version
  help     show help

Flags:
  -h, --help   show help

Daemon flags:
  --background    run in background (logs to file)
  --force         stop any running daemon before starting
  --kill          stop any running daemon and exit

Examples:
  folio open README.md
  folio cat docs/notes.md
  cat notes.md | folio save docs/notes.md
  folio history docs/notes.md
  folio update docs/notes.md --op delete
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"ui"}
	}

	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}
