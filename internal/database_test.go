package internal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchive_WriteAndQuery(t *testing.T) {
	db, err := OpenArchive(filepath.Join(t.TempDir(), "sessions.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	session := CreateTestSession("s1")
	require.NoError(t, WriteArchiveSession(db, session))

	messages, err := QueryArchiveMessages(db, "s1")
	require.NoError(t, err)
	assert.Equal(t, session.Messages, messages)

	var title string
	var count int
	require.NoError(t, db.QueryRow("SELECT title, message_count FROM sessions WHERE id = ?", "s1").Scan(&title, &count))
	assert.Equal(t, "Test Conversation", title)
	assert.Equal(t, 2, count)
}

func TestArchive_ReplacesSession(t *testing.T) {
	db, err := OpenArchive(filepath.Join(t.TempDir(), "sessions.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, WriteArchiveSession(db, CreateTestSession("s1")))
	replacement := CreateTestSessionWithMessages("s1", []Message{{Actor: "user", Content: "only one"}})
	require.NoError(t, WriteArchiveSession(db, replacement))

	messages, err := QueryArchiveMessages(db, "s1")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "only one", messages[0].Content)

	var sessions int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&sessions))
	assert.Equal(t, 1, sessions)
}

func TestArchive_UnknownSession(t *testing.T) {
	db, err := OpenArchive(filepath.Join(t.TempDir(), "sessions.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	messages, err := QueryArchiveMessages(db, "missing")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestOpenArchive_BadPath(t *testing.T) {
	_, err := OpenArchive(filepath.Join(t.TempDir(), "missing", "dir", "sessions.sqlite"))
	assert.Error(t, err)
}
