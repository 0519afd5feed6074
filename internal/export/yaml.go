package export

import (
	"fmt"
	"io"

	"github.com/iksnae/claude-session/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports sessions in YAML format
type YAMLExporter struct{}

// Export writes the transcript as a single YAML document headed by a
// comment naming the session
func (e *YAMLExporter) Export(session *internal.Session, w io.Writer) error {
	var doc yaml.Node
	if err := doc.Encode(session); err != nil {
		return fmt.Errorf("failed to encode session %s: %w", session.ID, err)
	}
	doc.HeadComment = fmt.Sprintf("claude-session transcript %s", session.ID)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
