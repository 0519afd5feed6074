package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/claude-session/internal"
)

// JSONLExporter writes one line per transcript entry, each carrying the
// session id and its position so lines from many sessions can be
// concatenated and still regrouped
type JSONLExporter struct{}

type jsonlLine struct {
	SessionID string `json:"session_id"`
	Seq       int    `json:"seq"`
	Timestamp string `json:"timestamp,omitempty"`
	Actor     string `json:"actor"`
	Content   string `json:"content"`
	Model     string `json:"model,omitempty"`
}

// Export writes the transcript entries of a session
func (e *JSONLExporter) Export(session *internal.Session, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for i, msg := range session.Messages {
		line := jsonlLine{
			SessionID: session.ID,
			Seq:       i,
			Timestamp: msg.Timestamp,
			Actor:     msg.Actor,
			Content:   msg.Content,
			Model:     msg.Model,
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("failed to encode entry %d of session %s: %w", i, session.ID, err)
		}
	}
	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
