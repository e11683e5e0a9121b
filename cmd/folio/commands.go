package main

import (
	"io"
	"os"
)

type commandRunner interface {
	Run(args []string) error
}

type commandWiring struct {
	stdin              io.Reader
	stdout             io.Writer
	stderr             io.Writer
	newClient          clientFactory
	runDaemon          func(background bool) error
	killDaemon         func() error
	configureUILogging func()
	version            string
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdin:     os.Stdin,
		stdout:    stdout,
		stderr:    stderr,
		newClient: newFolioClient,
		runDaemon: runDaemonProcess,
		killDaemon: func() error {
			return killDaemonWithFactory(newFolioClient)
		},
		configureUILogging: configureUILogging,
		version:            buildVersion(),
	}
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	return map[string]commandRunner{
		"daemon":  NewDaemonCommand(wiring.stderr, wiring.runDaemon, wiring.killDaemon),
		"ui":      NewUICommand(wiring.stderr, wiring.newClient, wiring.configureUILogging, wiring.version),
		"open":    NewOpenCommand(wiring.stderr, wiring.newClient, wiring.configureUILogging, wiring.version),
		"cat":     NewCatCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"save":    NewSaveCommand(wiring.stdout, wiring.stderr, wiring.stdin, wiring.newClient),
		"history": NewHistoryCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"restore": NewRestoreCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"update":  NewUpdateCommand(wiring.stdout, wiring.stderr, wiring.stdin, wiring.newClient),
		"kill":    NewKillCommand(wiring.stdout, wiring.stderr, wiring.killDaemon),
		"config":  NewConfigCommand(wiring.stdout, wiring.stderr),
		"version": NewVersionCommand(wiring.stdout, wiring.stderr, wiring.version),
	}
}
