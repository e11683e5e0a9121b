package main

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"text/tabwriter"

	"folio/internal/types"
)

const version = "dev"

// absDocumentPath resolves user-supplied paths before they reach the
// daemon, which only accepts absolute ones.
func absDocumentPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("document path is required")
	}
	return filepath.Abs(path)
}

func printSnapshots(output io.Writer, snapshots []*types.Snapshot) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tSAVED\tSIZE\tHASH")
	for _, snapshot := range snapshots {
		hash := snapshot.Hash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		saved := snapshot.SavedAt.Local().Format("2006-01-02 15:04:05")
		fmt.Fprintf(writer, "%s\t%s\t%d\t%s\n", snapshot.ID, saved, snapshot.Size, hash)
	}
	_ = writer.Flush()
}

func readContent(stdin io.Reader, fromPath string) (string, error) {
	if fromPath != "" {
		data, err := os.ReadFile(fromPath)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if stdin == nil {
		return "", errors.New("no input available")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func exitOnErr(label string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	fmt.Fprintf(stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		var revision string
		var modified string
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				revision = setting.Value
			case "vcs.modified":
				modified = setting.Value
			}
		}
		if revision != "" {
			if modified == "true" {
				return revision + "-dirty"
			}
			return revision
		}
	}

	exe, err := os.Executable()
	if err == nil {
		file, err := os.Open(exe)
		if err == nil {
			defer file.Close()
			hasher := sha256.New()
			if _, err := io.Copy(hasher, file); err == nil {
				sum := hasher.Sum(nil)
				return fmt.Sprintf("bin-%x", sum[:6])
			}
		}
	}

	return version
}
