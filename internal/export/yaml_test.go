package export

import (
	"bytes"
	"testing"

	"github.com/iksnae/claude-session/internal"
	"gopkg.in/yaml.v3"
)

func TestYAMLExporter_Export(t *testing.T) {
	session := internal.CreateTestSession("test1")

	var buf bytes.Buffer
	exporter := &YAMLExporter{}
	if err := exporter.Export(session, &buf); err != nil {
		t.Fatalf("YAMLExporter.Export() error = %v", err)
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("# claude-session transcript test1\n")) {
		t.Errorf("output should start with a header comment:\n%s", buf.String())
	}

	var decoded internal.Session
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid YAML: %v\nOutput: %s", err, buf.String())
	}

	if decoded.ID != "test1" {
		t.Errorf("ID = %q, want test1", decoded.ID)
	}
	if decoded.Metadata.Title != "Test Conversation" {
		t.Errorf("Title = %q, want Test Conversation", decoded.Metadata.Title)
	}
	if len(decoded.Messages) != 2 || decoded.Messages[1].Actor != "assistant" {
		t.Errorf("unexpected messages: %+v", decoded.Messages)
	}
}

func TestYAMLExporter_Extension(t *testing.T) {
	exporter := &YAMLExporter{}
	if got := exporter.Extension(); got != "yaml" {
		t.Errorf("YAMLExporter.Extension() = %v, want yaml", got)
	}
}
