package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Record is a JSONL line under construction
type Record map[string]interface{}

// UserRecord builds a user record whose content is plain text or a
// block array
func UserRecord(sessionID, uuid, timestamp string, content interface{}) Record {
	return Record{
		"type":      "user",
		"sessionId": sessionID,
		"cwd":       "/home/dev/project",
		"uuid":      uuid,
		"timestamp": timestamp,
		"version":   "1.0.0",
		"message": map[string]interface{}{
			"role":    "user",
			"content": content,
		},
	}
}

// AssistantRecord builds an assistant record with a provider message id
func AssistantRecord(sessionID, uuid, messageID, timestamp string, blocks ...map[string]interface{}) Record {
	if blocks == nil {
		blocks = []map[string]interface{}{}
	}
	return Record{
		"type":      "assistant",
		"sessionId": sessionID,
		"cwd":       "/home/dev/project",
		"uuid":      uuid,
		"timestamp": timestamp,
		"version":   "1.0.0",
		"message": map[string]interface{}{
			"id":      messageID,
			"role":    "assistant",
			"model":   "claude-sonnet",
			"content": blocks,
		},
	}
}

// SummaryRecord builds a summary record for a leaf message
func SummaryRecord(leafUUID, summary string) Record {
	return Record{
		"type":     "summary",
		"leafUuid": leafUUID,
		"summary":  summary,
	}
}

// With sets a top-level field and returns the record
func (r Record) With(key string, value interface{}) Record {
	r[key] = value
	return r
}

// TextBlock builds a text content block
func TextBlock(text string) map[string]interface{} {
	return map[string]interface{}{"type": "text", "text": text}
}

// ThinkingBlock builds a thinking content block
func ThinkingBlock(text string) map[string]interface{} {
	return map[string]interface{}{"type": "thinking", "thinking": text}
}

// ToolUseBlock builds a tool_use content block
func ToolUseBlock(id, name string, input map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"type": "tool_use", "id": id, "name": name, "input": input}
}

// ToolResultBlock builds a tool_result content block
func ToolResultBlock(toolUseID, content string) map[string]interface{} {
	return map[string]interface{}{"type": "tool_result", "tool_use_id": toolUseID, "content": content}
}

// JSONL encodes records one per line
func JSONL(t *testing.T, records ...Record) string {
	t.Helper()
	var b strings.Builder
	for _, rec := range records {
		b.Write(JSONMarshal(t, rec))
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteSessionFile writes a session log under root/project/name and
// returns its path. Each line is written verbatim.
func WriteSessionFile(t *testing.T, root, project, name string, lines ...string) string {
	t.Helper()
	dir := filepath.Join(root, project)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create project directory: %v", err)
	}
	path := filepath.Join(dir, name)
	content := strings.Join(lines, "\n")
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write session file %s: %v", path, err)
	}
	return path
}

// WriteSession encodes records into a session log under root/project/name
func WriteSession(t *testing.T, root, project, name string, records ...Record) string {
	t.Helper()
	return WriteSessionFile(t, root, project, name, JSONL(t, records...))
}

// MustJSON encodes v as a JSON string
func MustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal JSON: %v", err)
	}
	return string(data)
}
