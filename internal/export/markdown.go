package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/claude-session/internal"
)

// MarkdownExporter exports sessions in Markdown format
type MarkdownExporter struct{}

// Export writes a header with the session metadata followed by one
// section per transcript entry. Tool entries are fenced and thinking is
// folded into a collapsible block.
func (e *MarkdownExporter) Export(session *internal.Session, w io.Writer) error {
	title := session.Metadata.Title
	if title == "" {
		title = "Session " + session.ID
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**Session:** %s  \n", session.ID)
	if session.Project != "" {
		fmt.Fprintf(&b, "**Project:** %s  \n", session.Project)
	}
	if session.Metadata.UpdatedAt != "" {
		fmt.Fprintf(&b, "**Updated:** %s  \n", session.Metadata.UpdatedAt)
	}
	fmt.Fprintf(&b, "**Messages:** %d\n\n", len(session.Messages))

	for _, msg := range session.Messages {
		b.WriteString("---\n\n")
		writeEntry(&b, msg)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeEntry(b *strings.Builder, msg internal.Message) {
	fmt.Fprintf(b, "**%s:**", msg.Actor)
	if msg.Timestamp != "" {
		fmt.Fprintf(b, " (%s)", msg.Timestamp)
	}
	if msg.Model != "" {
		fmt.Fprintf(b, " _%s_", msg.Model)
	}
	b.WriteString("\n\n")

	if msg.Actor == "tool" {
		fmt.Fprintf(b, "```\n%s\n```\n\n", msg.Content)
		return
	}

	thinking, text := internal.SplitThinking(msg.Content)
	if thinking != "" {
		fmt.Fprintf(b, "<details>\n<summary>Thinking</summary>\n\n%s\n\n</details>\n\n", escapeMarkdown(thinking))
	}
	if text != "" {
		fmt.Fprintf(b, "%s\n\n", escapeMarkdown(text))
	}
}

// escapeMarkdown escapes emphasis markers outside code fences
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	inCodeBlock := false

	for i, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if inCodeBlock {
			continue
		}
		line = strings.ReplaceAll(line, "**", "\\*\\*")
		lines[i] = strings.ReplaceAll(line, "__", "\\_\\_")
	}
	return strings.Join(lines, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
