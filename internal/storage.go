package internal

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// maxLineSize bounds a single JSONL record; tool results can be large
const maxLineSize = 64 * 1024 * 1024

// Storage lists project directories and session files under the
// projects root
type Storage struct {
	root    string
	pattern string
}

// NewStorage creates a Storage for the given root and session pattern
func NewStorage(root, pattern string) *Storage {
	if pattern == "" {
		pattern = DefaultSessionPattern
	}
	return &Storage{root: root, pattern: pattern}
}

// Root returns the projects directory
func (s *Storage) Root() string {
	return s.root
}

// ProjectDirs lists the project directories. Failure to list the root is
// fatal to the caller.
func (s *Storage) ProjectDirs() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &StorageError{Path: s.root, Op: "list", Err: err}
	}

	dirs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(s.root, entry.Name()))
		}
	}
	return dirs, nil
}

// SessionFiles lists the session log files of one project directory
func (s *Storage) SessionFiles(projectDir string) ([]string, error) {
	entries, err := os.ReadDir(projectDir)
	if err != nil {
		return nil, &StorageError{Path: projectDir, Op: "list", Err: err}
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if matched, _ := doublestar.Match(s.pattern, entry.Name()); matched {
			files = append(files, filepath.Join(projectDir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// EachSessionFile calls fn for every session file of every project, in
// directory order. Unlistable project directories are skipped.
func (s *Storage) EachSessionFile(ctx context.Context, fn func(projectDir, path string) (bool, error)) error {
	projects, err := s.ProjectDirs()
	if err != nil {
		return err
	}

	for _, projectDir := range projects {
		files, err := s.SessionFiles(projectDir)
		if err != nil {
			LogWarn("Skipping project directory: %v", err)
			continue
		}
		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			stop, err := fn(projectDir, path)
			if err != nil {
				return err
			}
			if stop {
				return nil
			}
		}
	}
	return nil
}

// ScanLines opens path and calls fn with every non-blank line and its
// 1-based number. The slice passed to fn is only valid during the call.
func ScanLines(path string, fn func(lineNo int, line []byte) bool) error {
	file, err := os.Open(path)
	if err != nil {
		return &StorageError{Path: path, Op: "open", Err: err}
	}
	defer file.Close()

	return scanReader(path, file, fn)
}

func scanReader(path string, r io.Reader, fn func(lineNo int, line []byte) bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if !fn(lineNo, line) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return &StorageError{Path: path, Op: "read", Err: err}
	}
	return nil
}

func lineKey(path string, lineNo int) string {
	return fmt.Sprintf("%s:%d", path, lineNo)
}
