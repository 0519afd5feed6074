package internal

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := fmt.Errorf("show: %w", &NotFoundError{SessionID: "abc"})

	assert.True(t, errors.Is(err, ErrSessionNotFound))
	assert.Equal(t, "show: session file not found for ID: abc", err.Error())

	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
	assert.Equal(t, "abc", nf.SessionID)
}

func TestStorageError(t *testing.T) {
	err := &StorageError{Path: "/root/projects", Op: "list", Err: os.ErrPermission}

	assert.Equal(t, "storage error: list /root/projects: permission denied", err.Error())
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.False(t, errors.Is(err, ErrSessionNotFound))
}

func TestParseError(t *testing.T) {
	err := &ParseError{Source: "jsonl", Key: "s1.jsonl:3", Err: errMissingField}

	assert.Equal(t, "parse error [jsonl] s1.jsonl:3: missing required field", err.Error())
	assert.ErrorIs(t, err, errMissingField)
}

func TestExportError(t *testing.T) {
	cause := errors.New("disk full")
	err := &ExportError{Format: "jsonl", Path: "out/session_1.jsonl", Err: cause}

	assert.Equal(t, "export error [jsonl] out/session_1.jsonl: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
}
