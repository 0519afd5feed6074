package internal

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is matched by every NotFoundError
var ErrSessionNotFound = errors.New("session not found")

// StorageError represents errors accessing the log directories or files
type StorageError struct {
	Path string
	Op   string // "list", "open", "read"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ParseError represents a line that could not be decoded
type ParseError struct {
	Source string // "jsonl"
	Key    string // file:line
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NotFoundError is returned when no log file contains the session
type NotFoundError struct {
	SessionID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session file not found for ID: %s", e.SessionID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrSessionNotFound
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
