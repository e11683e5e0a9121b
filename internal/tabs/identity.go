package tabs

import (
	"strings"

	"folio/internal/types"
)

// contentMatchCeiling bounds the cost of the last-resort content equality
// rule. Larger payloads never match by content.
const contentMatchCeiling = 64 * 1024

// normalizePath makes separator style irrelevant to identity. Agent-side
// tooling reports Windows-style paths on Windows hosts, so backslashes are
// normalized unconditionally rather than per-OS.
func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	return strings.ReplaceAll(path, `\`, "/")
}

// findTab decides whether an open request refers to a document that already
// has a tab. One rule fires per request, chosen by the strongest identity
// key the request carries; rules never fall through to a weaker key, which
// keeps matching deterministic. Comparison is case-sensitive with separators
// normalized to forward slashes.
func findTab(open []*types.Tab, contentType types.ContentType, content string, meta types.TabMetadata) *types.Tab {
	switch {
	case meta.FilePath != "":
		want := normalizePath(meta.FilePath)
		for _, tab := range open {
			if tab.ContentType == contentType && normalizePath(tab.Metadata.FilePath) == want {
				return tab
			}
		}
	case meta.FileName != "":
		for _, tab := range open {
			if tab.ContentType == contentType && tab.Metadata.FilePath == "" && tab.Metadata.FileName == meta.FileName {
				return tab
			}
		}
	case meta.Title != "":
		for _, tab := range open {
			if tab.ContentType == contentType && tab.Metadata.FilePath == "" && tab.Metadata.FileName == "" && tab.Metadata.Title == meta.Title {
				return tab
			}
		}
	case meta.Empty() && len(content) < contentMatchCeiling:
		for _, tab := range open {
			if tab.ContentType == contentType && tab.Metadata.Empty() && tab.Content == content {
				return tab
			}
		}
	}
	return nil
}
