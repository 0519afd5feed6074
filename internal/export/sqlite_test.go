package export

import (
	"path/filepath"
	"testing"

	"github.com/iksnae/claude-session/internal"
)

func TestSQLiteExporter_ExportAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.sqlite")
	exporter := &SQLiteExporter{}

	sessions := []*internal.Session{
		internal.CreateTestSession("s1"),
		internal.CreateTestSessionWithMessages("s2", []internal.Message{
			{Actor: "user", Content: "only"},
		}),
	}
	if err := exporter.ExportAll(sessions, path); err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}
	// A second export replaces rather than duplicates
	if err := exporter.ExportAll(sessions[:1], path); err != nil {
		t.Fatalf("ExportAll() second run error = %v", err)
	}

	db, err := internal.OpenArchive(path)
	if err != nil {
		t.Fatalf("OpenArchive() error = %v", err)
	}
	defer db.Close()

	messages, err := internal.QueryArchiveMessages(db, "s1")
	if err != nil {
		t.Fatalf("QueryArchiveMessages() error = %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	if messages[0].Actor != "user" || messages[1].Model != "claude-sonnet" {
		t.Errorf("unexpected messages: %+v", messages)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if count != 2 {
		t.Errorf("sessions = %d, want 2", count)
	}
}

func TestSQLiteExporter_ReadsBackEverySession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.sqlite")
	sessions := []*internal.Session{
		internal.CreateTestSession("s1"),
		internal.CreateTestSessionWithMessages("s2", []internal.Message{}),
	}
	if err := (&SQLiteExporter{}).ExportAll(sessions, path); err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}
}

func TestSQLiteExporter_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "sessions.sqlite")
	err := (&SQLiteExporter{}).ExportAll([]*internal.Session{internal.CreateTestSession("s1")}, path)
	if err == nil {
		t.Fatal("ExportAll() should fail for an unwritable path")
	}
}

func TestSQLiteExporter_Extension(t *testing.T) {
	if got := (&SQLiteExporter{}).Extension(); got != "sqlite" {
		t.Errorf("SQLiteExporter.Extension() = %v, want sqlite", got)
	}
}
