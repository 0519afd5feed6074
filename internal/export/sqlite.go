package export

import (
	"fmt"

	"github.com/iksnae/claude-session/internal"
)

// SQLiteExporter writes sessions into a SQLite archive with one row per
// session and one row per message
type SQLiteExporter struct{}

// ExportAll stores every session in the archive at path. Each session is
// read back after writing and its message count compared.
func (e *SQLiteExporter) ExportAll(sessions []*internal.Session, path string) error {
	db, err := internal.OpenArchive(path)
	if err != nil {
		return &internal.ExportError{Format: "sqlite", Path: path, Err: err}
	}
	defer db.Close()

	for _, session := range sessions {
		if err := internal.WriteArchiveSession(db, session); err != nil {
			return &internal.ExportError{Format: "sqlite", Path: path, Err: err}
		}
		stored, err := internal.QueryArchiveMessages(db, session.ID)
		if err != nil {
			return &internal.ExportError{Format: "sqlite", Path: path, Err: err}
		}
		if len(stored) != len(session.Messages) {
			return &internal.ExportError{Format: "sqlite", Path: path, Err: fmt.Errorf(
				"session %s: archived %d of %d messages", session.ID, len(stored), len(session.Messages))}
		}
	}
	return nil
}

// Extension returns the file extension for this format
func (e *SQLiteExporter) Extension() string {
	return "sqlite"
}
