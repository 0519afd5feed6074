package export

import (
	"fmt"
	"io"

	"github.com/iksnae/claude-session/internal"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(session *internal.Session, w io.Writer) error
	Extension() string
}

// ArchiveExporter writes many sessions into a single file
type ArchiveExporter interface {
	ExportAll(sessions []*internal.Session, path string) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: jsonl, md, yaml, json, sqlite)", format)
	}
}

// NewArchiveExporter creates an exporter for single-file formats
func NewArchiveExporter(format string) (ArchiveExporter, bool) {
	switch format {
	case "sqlite", "db":
		return &SQLiteExporter{}, true
	default:
		return nil, false
	}
}
