package types

import (
	"path/filepath"
	"strings"
	"time"
)

// ContentType routes a tab to a viewer. The engine never interprets it
// beyond equality checks.
type ContentType string

const (
	ContentMarkdown ContentType = "markdown"
	ContentCode     ContentType = "code"
	ContentImage    ContentType = "image"
	ContentDiff     ContentType = "diff"
	ContentPDF      ContentType = "pdf"
	ContentWord     ContentType = "word"
	ContentExcel    ContentType = "excel"
	ContentPPT      ContentType = "ppt"
	ContentHTML     ContentType = "html"
	ContentURL      ContentType = "url"
)

func NormalizeContentType(raw ContentType) (ContentType, bool) {
	value := ContentType(strings.ToLower(strings.TrimSpace(string(raw))))
	switch value {
	case ContentMarkdown, ContentCode, ContentImage, ContentDiff, ContentPDF,
		ContentWord, ContentExcel, ContentPPT, ContentHTML, ContentURL:
		return value, true
	default:
		return "", false
	}
}

// ContentTypeForPath picks the viewer kind for a file path by extension.
// Unknown extensions fall back to code so plain text always has a home.
func ContentTypeForPath(path string) ContentType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdx":
		return ContentMarkdown
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".bmp":
		return ContentImage
	case ".diff", ".patch":
		return ContentDiff
	case ".pdf":
		return ContentPDF
	case ".doc", ".docx":
		return ContentWord
	case ".xls", ".xlsx", ".csv":
		return ContentExcel
	case ".ppt", ".pptx":
		return ContentPPT
	case ".html", ".htm":
		return ContentHTML
	default:
		return ContentCode
	}
}

// TabMetadata identifies the document behind a tab. FilePath is the
// strongest identity key; the rest are fallbacks in the order the engine
// tries them.
type TabMetadata struct {
	FilePath  string `json:"file_path,omitempty"`
	FileName  string `json:"file_name,omitempty"`
	Title     string `json:"title,omitempty"`
	Workspace string `json:"workspace,omitempty"`
	Language  string `json:"language,omitempty"`
	Editable  bool   `json:"editable,omitempty"`
}

func (m TabMetadata) Empty() bool {
	return m.FilePath == "" && m.FileName == "" && m.Title == "" &&
		m.Workspace == "" && m.Language == ""
}

// Tab is one open document. Content and OriginalContent diverge while the
// user has unsaved edits; everything else is fixed at creation except
// LoadError, which marks a terminal display state.
type Tab struct {
	ID              string      `json:"id"`
	Content         string      `json:"content"`
	OriginalContent string      `json:"original_content"`
	ContentType     ContentType `json:"content_type"`
	Metadata        TabMetadata `json:"metadata"`
	LoadError       string      `json:"load_error,omitempty"`
	OpenedAt        time.Time   `json:"opened_at"`
}

func (t *Tab) IsDirty() bool {
	if t == nil {
		return false
	}
	return t.Content != t.OriginalContent
}

// DisplayTitle is the label shown on the tab strip: file name, then title,
// then a generic placeholder.
func (t *Tab) DisplayTitle() string {
	if t == nil {
		return ""
	}
	if name := strings.TrimSpace(t.Metadata.FileName); name != "" {
		return name
	}
	if title := strings.TrimSpace(t.Metadata.Title); title != "" {
		return title
	}
	return "untitled"
}

func CloneTab(in *Tab) *Tab {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}
