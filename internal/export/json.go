package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/claude-session/internal"
)

// JSONExporter writes one pretty-printed JSON document per session
type JSONExporter struct{}

// jsonDocument adds per-actor entry counts to the transcript
type jsonDocument struct {
	*internal.Session
	Actors map[string]int `json:"actors"`
}

// Export writes the transcript. HTML escaping is off so code and
// <thinking> tags survive verbatim.
func (e *JSONExporter) Export(session *internal.Session, w io.Writer) error {
	doc := jsonDocument{Session: session, Actors: make(map[string]int)}
	for _, msg := range session.Messages {
		doc.Actors[msg.Actor]++
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
