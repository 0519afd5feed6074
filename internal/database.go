package internal

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const archiveSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id            TEXT PRIMARY KEY,
	project       TEXT,
	title         TEXT,
	created_at    TEXT,
	updated_at    TEXT,
	message_count INTEGER
);
CREATE TABLE IF NOT EXISTS messages (
	session_id TEXT NOT NULL REFERENCES sessions(id),
	seq        INTEGER NOT NULL,
	timestamp  TEXT,
	actor      TEXT NOT NULL,
	content    TEXT NOT NULL,
	model      TEXT,
	PRIMARY KEY (session_id, seq)
);
`

// OpenArchive opens or creates a SQLite session archive
func OpenArchive(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if _, err := db.Exec(archiveSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// WriteArchiveSession stores a transcript, replacing any earlier copy of
// the same session
func WriteArchiveSession(db *sql.DB, session *Session) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin failed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM messages WHERE session_id = ?", session.ID); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	_, err = tx.Exec(
		"INSERT OR REPLACE INTO sessions (id, project, title, created_at, updated_at, message_count) VALUES (?, ?, ?, ?, ?, ?)",
		session.ID, session.Project, session.Metadata.Title,
		session.Metadata.CreatedAt, session.Metadata.UpdatedAt, session.Metadata.MessageCount,
	)
	if err != nil {
		return fmt.Errorf("insert session failed: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO messages (session_id, seq, timestamp, actor, content, model) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare failed: %w", err)
	}
	defer stmt.Close()

	for i, msg := range session.Messages {
		if _, err := stmt.Exec(session.ID, i, msg.Timestamp, msg.Actor, msg.Content, msg.Model); err != nil {
			return fmt.Errorf("insert message failed: %w", err)
		}
	}

	return tx.Commit()
}

// QueryArchiveMessages returns the archived messages of a session in order
func QueryArchiveMessages(db *sql.DB, sessionID string) ([]Message, error) {
	rows, err := db.Query("SELECT timestamp, actor, content, model FROM messages WHERE session_id = ? ORDER BY seq", sessionID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var msg Message
		var timestamp, model sql.NullString
		if err := rows.Scan(&timestamp, &msg.Actor, &msg.Content, &model); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		msg.Timestamp = timestamp.String
		msg.Model = model.String
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return messages, nil
}
