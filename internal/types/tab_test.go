package types

import "testing"

func TestDisplayTitleFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tab  Tab
		want string
	}{
		{
			name: "file name wins",
			tab:  Tab{Metadata: TabMetadata{FileName: "readme.md", Title: "Readme"}},
			want: "readme.md",
		},
		{
			name: "title when no file name",
			tab:  Tab{Metadata: TabMetadata{Title: "Design Notes"}},
			want: "Design Notes",
		},
		{
			name: "placeholder when metadata empty",
			tab:  Tab{},
			want: "untitled",
		},
		{
			name: "whitespace file name falls through",
			tab:  Tab{Metadata: TabMetadata{FileName: "   ", Title: "Plan"}},
			want: "Plan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.tab.DisplayTitle(); got != tt.want {
				t.Fatalf("DisplayTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input ContentType
		want  ContentType
		ok    bool
	}{
		{name: "markdown", input: "markdown", want: ContentMarkdown, ok: true},
		{name: "trimmed uppercase", input: "  PDF  ", want: ContentPDF, ok: true},
		{name: "url", input: "url", want: ContentURL, ok: true},
		{name: "unknown kind", input: "spreadsheet", want: "", ok: false},
		{name: "empty", input: "", want: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := NormalizeContentType(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("NormalizeContentType(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestContentTypeForPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want ContentType
	}{
		{path: "/ws/readme.md", want: ContentMarkdown},
		{path: "/ws/main.go", want: ContentCode},
		{path: "/ws/chart.PNG", want: ContentImage},
		{path: "/ws/change.patch", want: ContentDiff},
		{path: "/ws/report.docx", want: ContentWord},
		{path: "/ws/data.csv", want: ContentExcel},
		{path: "/ws/deck.pptx", want: ContentPPT},
		{path: "/ws/index.html", want: ContentHTML},
		{path: "/ws/manual.pdf", want: ContentPDF},
		{path: "/ws/Makefile", want: ContentCode},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			if got := ContentTypeForPath(tt.path); got != tt.want {
				t.Fatalf("ContentTypeForPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestCloneTabIndependent(t *testing.T) {
	t.Parallel()

	orig := &Tab{ID: "t1", Content: "a", OriginalContent: "a", ContentType: ContentMarkdown}
	cp := CloneTab(orig)
	cp.Content = "b"
	if orig.Content != "a" {
		t.Fatalf("clone mutated original: %q", orig.Content)
	}
	if !cp.IsDirty() {
		t.Fatalf("expected clone dirty after edit")
	}
	if orig.IsDirty() {
		t.Fatalf("original should stay clean")
	}
}
