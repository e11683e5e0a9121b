package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	folioclient "folio/internal/client"
	"folio/internal/types"
)

func TestDaemonCommandKillFlag(t *testing.T) {
	var calls []string
	cmd := NewDaemonCommand(
		&bytes.Buffer{},
		func(background bool) error {
			calls = append(calls, "run")
			if background {
				calls = append(calls, "background")
			}
			return nil
		},
		func() error {
			calls = append(calls, "kill")
			return nil
		},
	)

	if err := cmd.Run([]string{"--kill"}); err != nil {
		t.Fatalf("expected kill run to succeed, got err=%v", err)
	}
	if strings.Join(calls, ",") != "kill" {
		t.Fatalf("unexpected call order: %v", calls)
	}
}

func TestDaemonCommandForceStopsDaemonFirst(t *testing.T) {
	var calls []string
	cmd := NewDaemonCommand(
		&bytes.Buffer{},
		func(background bool) error {
			calls = append(calls, "run")
			return nil
		},
		func() error {
			calls = append(calls, "kill")
			return nil
		},
	)

	if err := cmd.Run([]string{"--force"}); err != nil {
		t.Fatalf("expected force run to succeed, got err=%v", err)
	}
	if strings.Join(calls, ",") != "kill,run" {
		t.Fatalf("unexpected call order: %v", calls)
	}
}

func TestSaveCommandSendsStdinContent(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeCommandClient{
		saveResp: &folioclient.SaveDocumentResponse{
			OK:       true,
			Snapshot: &types.Snapshot{ID: "snap-1", FilePath: "/ws/notes.md"},
		},
	}
	cmd := NewSaveCommand(stdout, &bytes.Buffer{}, strings.NewReader("# Notes\n"), fixedFactory(fake))

	if err := cmd.Run([]string{"/ws/notes.md"}); err != nil {
		t.Fatalf("expected save to succeed, got err=%v", err)
	}
	if fake.ensureDaemonCalls != 1 {
		t.Fatalf("expected ensure daemon once, got %d", fake.ensureDaemonCalls)
	}
	if fake.saveCalls != 1 || fake.savePath != "/ws/notes.md" || fake.saveContent != "# Notes\n" {
		t.Fatalf("unexpected save call: calls=%d path=%q content=%q", fake.saveCalls, fake.savePath, fake.saveContent)
	}
	if got := stdout.String(); !strings.Contains(got, "saved /ws/notes.md") || !strings.Contains(got, "snap-1") {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func TestSaveCommandRequiresPath(t *testing.T) {
	cmd := NewSaveCommand(&bytes.Buffer{}, &bytes.Buffer{}, strings.NewReader(""), fixedFactory(&fakeCommandClient{}))
	err := cmd.Run(nil)
	if err == nil || !strings.Contains(err.Error(), "save requires a document path") {
		t.Fatalf("expected path validation error, got %v", err)
	}
}

func TestCatCommandPrintsDocument(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeCommandClient{
		documentResp: &types.Document{FilePath: "/ws/notes.md", Content: "hello from daemon\n"},
	}
	cmd := NewCatCommand(stdout, &bytes.Buffer{}, fixedFactory(fake))

	if err := cmd.Run([]string{"/ws/notes.md"}); err != nil {
		t.Fatalf("expected cat to succeed, got err=%v", err)
	}
	if fake.documentCalls != 1 || fake.documentPath != "/ws/notes.md" {
		t.Fatalf("unexpected load call: calls=%d path=%q", fake.documentCalls, fake.documentPath)
	}
	if got := stdout.String(); got != "hello from daemon\n" {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func TestCatCommandResolvesRelativePath(t *testing.T) {
	fake := &fakeCommandClient{
		documentResp: &types.Document{Content: ""},
	}
	cmd := NewCatCommand(&bytes.Buffer{}, &bytes.Buffer{}, fixedFactory(fake))

	if err := cmd.Run([]string{"notes.md"}); err != nil {
		t.Fatalf("expected cat to succeed, got err=%v", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if want := filepath.Join(cwd, "notes.md"); fake.documentPath != want {
		t.Fatalf("expected resolved path %q, got %q", want, fake.documentPath)
	}
}

func TestHistoryCommandPrintsTable(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeCommandClient{
		snapshotsResp: []*types.Snapshot{
			{ID: "snap-1", FilePath: "/ws/notes.md", Size: 5, Hash: "abcdef1234567890", SavedAt: time.Now()},
		},
	}
	cmd := NewHistoryCommand(stdout, &bytes.Buffer{}, fixedFactory(fake))

	if err := cmd.Run([]string{"/ws/notes.md"}); err != nil {
		t.Fatalf("expected history to succeed, got err=%v", err)
	}
	if fake.snapshotsPath != "/ws/notes.md" {
		t.Fatalf("unexpected snapshots path: %q", fake.snapshotsPath)
	}
	out := stdout.String()
	if !strings.Contains(out, "ID") || !strings.Contains(out, "SAVED") || !strings.Contains(out, "SIZE") {
		t.Fatalf("expected header in output, got %q", out)
	}
	if !strings.Contains(out, "snap-1") || !strings.Contains(out, "abcdef123456") {
		t.Fatalf("expected snapshot row in output, got %q", out)
	}
}

func TestRestoreCommandPrintsSnapshotContent(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeCommandClient{
		snapshotResp: &types.Snapshot{ID: "snap-1", FilePath: "/ws/notes.md", Content: "old body"},
	}
	cmd := NewRestoreCommand(stdout, &bytes.Buffer{}, fixedFactory(fake))

	if err := cmd.Run([]string{"snap-1"}); err != nil {
		t.Fatalf("expected restore to succeed, got err=%v", err)
	}
	if fake.snapshotID != "snap-1" {
		t.Fatalf("unexpected snapshot id: %q", fake.snapshotID)
	}
	if fake.saveCalls != 0 {
		t.Fatalf("expected no save without --save, got %d", fake.saveCalls)
	}
	if got := stdout.String(); got != "old body" {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func TestRestoreCommandSaveFlagWritesBack(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeCommandClient{
		snapshotResp: &types.Snapshot{ID: "snap-1", FilePath: "/ws/notes.md", Content: "old body"},
	}
	cmd := NewRestoreCommand(stdout, &bytes.Buffer{}, fixedFactory(fake))

	if err := cmd.Run([]string{"--save", "snap-1"}); err != nil {
		t.Fatalf("expected restore --save to succeed, got err=%v", err)
	}
	if fake.saveCalls != 1 || fake.savePath != "/ws/notes.md" || fake.saveContent != "old body" {
		t.Fatalf("unexpected save call: calls=%d path=%q content=%q", fake.saveCalls, fake.savePath, fake.saveContent)
	}
	if got := stdout.String(); !strings.Contains(got, "restored /ws/notes.md") {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func TestUpdateCommandPostsWriteFromStdin(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeCommandClient{
		updateResp: &folioclient.PostUpdateResponse{OK: true, Delivered: 2},
	}
	cmd := NewUpdateCommand(stdout, &bytes.Buffer{}, strings.NewReader("fresh body"), fixedFactory(fake))

	if err := cmd.Run([]string{"/ws/notes.md"}); err != nil {
		t.Fatalf("expected update to succeed, got err=%v", err)
	}
	if len(fake.updates) != 1 {
		t.Fatalf("expected one update, got %d", len(fake.updates))
	}
	update := fake.updates[0]
	if update.FilePath != "/ws/notes.md" || update.Op != types.UpdateOpWrite || update.Content != "fresh body" {
		t.Fatalf("unexpected update: %+v", update)
	}
	if got := stdout.String(); !strings.Contains(got, "delivered to 2 clients") {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func TestUpdateCommandDeleteSkipsContent(t *testing.T) {
	fake := &fakeCommandClient{}
	cmd := NewUpdateCommand(&bytes.Buffer{}, &bytes.Buffer{}, nil, fixedFactory(fake))

	if err := cmd.Run([]string{"--op", "delete", "/ws/notes.md"}); err != nil {
		t.Fatalf("expected delete update to succeed, got err=%v", err)
	}
	if len(fake.updates) != 1 {
		t.Fatalf("expected one update, got %d", len(fake.updates))
	}
	update := fake.updates[0]
	if update.Op != types.UpdateOpDelete || update.Content != "" {
		t.Fatalf("unexpected update: %+v", update)
	}
}

func TestUpdateCommandRejectsUnknownOp(t *testing.T) {
	cmd := NewUpdateCommand(&bytes.Buffer{}, &bytes.Buffer{}, strings.NewReader(""), fixedFactory(&fakeCommandClient{}))
	err := cmd.Run([]string{"--op", "rename", "/ws/notes.md"})
	if err == nil || !strings.Contains(err.Error(), "invalid op") {
		t.Fatalf("expected op validation error, got %v", err)
	}
}

func TestUICommandEnsuresVersionAndRunsUI(t *testing.T) {
	fake := &fakeCommandClient{}
	logConfigured := 0

	cmd := NewUICommand(
		&bytes.Buffer{},
		fixedFactory(fake),
		func() { logConfigured++ },
		"v-test",
	)

	if err := cmd.Run([]string{"--restart-daemon", "--open", "/ws/README.md", "--no-restore"}); err != nil {
		t.Fatalf("expected ui command to succeed, got err=%v", err)
	}
	if logConfigured != 1 {
		t.Fatalf("expected UI logging to be configured once, got %d", logConfigured)
	}
	if fake.ensureVersionCalls != 1 {
		t.Fatalf("expected ensure daemon version once, got %d", fake.ensureVersionCalls)
	}
	if fake.ensureVersionExpected != "v-test" || !fake.ensureVersionRestart {
		t.Fatalf("unexpected ensure version args: expected=%q restart=%v", fake.ensureVersionExpected, fake.ensureVersionRestart)
	}
	if fake.runUICalls != 1 {
		t.Fatalf("expected ui runner once, got %d", fake.runUICalls)
	}
	if fake.runUIOpenPath != "/ws/README.md" || fake.runUIRestore {
		t.Fatalf("unexpected ui args: open=%q restore=%v", fake.runUIOpenPath, fake.runUIRestore)
	}
}

func TestOpenCommandLaunchesUIWithPath(t *testing.T) {
	fake := &fakeCommandClient{}
	cmd := NewOpenCommand(&bytes.Buffer{}, fixedFactory(fake), func() {}, "v-test")

	if err := cmd.Run([]string{"/ws/notes.md"}); err != nil {
		t.Fatalf("expected open to succeed, got err=%v", err)
	}
	if fake.runUICalls != 1 || fake.runUIOpenPath != "/ws/notes.md" || !fake.runUIRestore {
		t.Fatalf("unexpected ui args: calls=%d open=%q restore=%v", fake.runUICalls, fake.runUIOpenPath, fake.runUIRestore)
	}
}

func TestOpenCommandRequiresPath(t *testing.T) {
	cmd := NewOpenCommand(&bytes.Buffer{}, fixedFactory(&fakeCommandClient{}), func() {}, "v-test")
	err := cmd.Run(nil)
	if err == nil || !strings.Contains(err.Error(), "open requires a document path") {
		t.Fatalf("expected path validation error, got %v", err)
	}
}

func TestKillCommandStopsDaemon(t *testing.T) {
	stdout := &bytes.Buffer{}
	killed := 0
	cmd := NewKillCommand(stdout, &bytes.Buffer{}, func() error {
		killed++
		return nil
	})

	if err := cmd.Run(nil); err != nil {
		t.Fatalf("expected kill to succeed, got err=%v", err)
	}
	if killed != 1 {
		t.Fatalf("expected one kill call, got %d", killed)
	}
	if got := stdout.String(); got != "ok\n" {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func TestVersionCommandPrintsVersion(t *testing.T) {
	stdout := &bytes.Buffer{}
	cmd := NewVersionCommand(stdout, &bytes.Buffer{}, "abc123")

	if err := cmd.Run(nil); err != nil {
		t.Fatalf("expected version to succeed, got err=%v", err)
	}
	if got := stdout.String(); got != "folio abc123\n" {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func TestConfigCommandPrintsDefaultsAsTOML(t *testing.T) {
	stdout := &bytes.Buffer{}
	cmd := NewConfigCommand(stdout, &bytes.Buffer{})

	if err := cmd.Run([]string{"--default", "--format", "toml"}); err != nil {
		t.Fatalf("expected config to succeed, got err=%v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "config_path") || !strings.Contains(out, "[daemon]") {
		t.Fatalf("expected config sections in output, got %q", out)
	}
	if !strings.Contains(out, "127.0.0.1:7767") {
		t.Fatalf("expected default address in output, got %q", out)
	}
	if !strings.Contains(out, "debounce_ms = 500") {
		t.Fatalf("expected default debounce in output, got %q", out)
	}
}

func TestConfigCommandRejectsUnknownFormat(t *testing.T) {
	cmd := NewConfigCommand(&bytes.Buffer{}, &bytes.Buffer{})
	err := cmd.Run([]string{"--format", "yaml"})
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Fatalf("expected format validation error, got %v", err)
	}
}

type fakeCommandClient struct {
	ensureDaemonErr   error
	ensureDaemonCalls int

	ensureVersionErr      error
	ensureVersionCalls    int
	ensureVersionExpected string
	ensureVersionRestart  bool

	documentErr   error
	documentResp  *types.Document
	documentCalls int
	documentPath  string

	saveErr     error
	saveResp    *folioclient.SaveDocumentResponse
	saveCalls   int
	savePath    string
	saveContent string

	snapshotsErr  error
	snapshotsResp []*types.Snapshot
	snapshotsPath string

	snapshotErr  error
	snapshotResp *types.Snapshot
	snapshotID   string

	updateErr  error
	updateResp *folioclient.PostUpdateResponse
	updates    []types.ContentUpdate

	shutdownErr error
	healthErr   error
	healthResp  *folioclient.HealthResponse

	runUIErr      error
	runUICalls    int
	runUIOpenPath string
	runUIRestore  bool
}

func (f *fakeCommandClient) EnsureDaemon(context.Context) error {
	f.ensureDaemonCalls++
	return f.ensureDaemonErr
}

func (f *fakeCommandClient) EnsureDaemonVersion(_ context.Context, expectedVersion string, restart bool) error {
	f.ensureVersionCalls++
	f.ensureVersionExpected = expectedVersion
	f.ensureVersionRestart = restart
	return f.ensureVersionErr
}

func (f *fakeCommandClient) LoadDocument(_ context.Context, path string) (*types.Document, error) {
	f.documentCalls++
	f.documentPath = path
	if f.documentErr != nil {
		return nil, f.documentErr
	}
	if f.documentResp == nil {
		return nil, errors.New("documentResp not configured")
	}
	return f.documentResp, nil
}

func (f *fakeCommandClient) SaveDocument(_ context.Context, path, content string) (*folioclient.SaveDocumentResponse, error) {
	f.saveCalls++
	f.savePath = path
	f.saveContent = content
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	if f.saveResp == nil {
		return &folioclient.SaveDocumentResponse{OK: true}, nil
	}
	return f.saveResp, nil
}

func (f *fakeCommandClient) ListSnapshots(_ context.Context, path string) ([]*types.Snapshot, error) {
	f.snapshotsPath = path
	return f.snapshotsResp, f.snapshotsErr
}

func (f *fakeCommandClient) GetSnapshot(_ context.Context, id string) (*types.Snapshot, error) {
	f.snapshotID = id
	if f.snapshotErr != nil {
		return nil, f.snapshotErr
	}
	if f.snapshotResp == nil {
		return nil, errors.New("snapshotResp not configured")
	}
	return f.snapshotResp, nil
}

func (f *fakeCommandClient) PostUpdate(_ context.Context, update types.ContentUpdate) (*folioclient.PostUpdateResponse, error) {
	f.updates = append(f.updates, update)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateResp == nil {
		return &folioclient.PostUpdateResponse{OK: true, Delivered: 1}, nil
	}
	return f.updateResp, nil
}

func (f *fakeCommandClient) ShutdownDaemon(context.Context) error {
	return f.shutdownErr
}

func (f *fakeCommandClient) Health(context.Context) (*folioclient.HealthResponse, error) {
	return f.healthResp, f.healthErr
}

func (f *fakeCommandClient) RunUI(openPath string, restoreWorkspace bool) error {
	f.runUICalls++
	f.runUIOpenPath = openPath
	f.runUIRestore = restoreWorkspace
	return f.runUIErr
}

func fixedFactory(client commandClient) clientFactory {
	return func() (commandClient, error) {
		return client, nil
	}
}
