package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/claude-session/internal"
	"github.com/spf13/cobra"
)

var (
	limit        int
	since        string
	showTools    bool
	showThinking bool
)

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	toolMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Bold(true).
				Padding(0, 1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	thinkingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true).
			Padding(0, 2)
)

// maxToolLines bounds how much of a tool result is printed
const maxToolLines = 15

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show messages for a specific session",
	Long: `Display the reconstructed conversation of a session. Streamed assistant
fragments appear as one message; use --tools to list tool calls with their results.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID := args[0]

		var sinceTime time.Time
		if since != "" {
			parsed, err := time.Parse(time.RFC3339, since)
			if err != nil {
				return fmt.Errorf("invalid --since timestamp format (expected RFC3339): %w", err)
			}
			sinceTime = parsed
		}

		meta, messages, err := newService().GetSession(cmd.Context(), sessionID)
		if err != nil {
			return err
		}

		normalizer := internal.NewNormalizer()
		normalizer.IncludeTools = showTools
		normalizer.IncludeThinking = showThinking
		session, err := normalizer.NormalizeSession(meta, messages)
		if err != nil {
			return fmt.Errorf("failed to normalize session: %w", err)
		}

		out := cmd.OutOrStdout()
		displaySessionHeader(out, session)

		messagesToShow := session.Messages
		if !sinceTime.IsZero() {
			messagesToShow = filterSince(messagesToShow, sinceTime)
		}

		totalFiltered := len(messagesToShow)
		if limit > 0 && limit < len(messagesToShow) {
			messagesToShow = messagesToShow[:limit]
		}

		for i, msg := range messagesToShow {
			displayMessage(out, i+1, msg, totalFiltered)
		}

		if limit > 0 && limit < totalFiltered {
			remaining := totalFiltered - limit
			_, _ = fmt.Fprintln(out)
			_, _ = fmt.Fprintln(out, lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Italic(true).
				Render(fmt.Sprintf("... (%d more message(s))", remaining)))
		}

		return nil
	},
}

// filterSince keeps messages stamped at or after t
func filterSince(messages []internal.Message, t time.Time) []internal.Message {
	filtered := make([]internal.Message, 0, len(messages))
	for _, msg := range messages {
		msgTime, err := time.Parse(time.RFC3339, msg.Timestamp)
		if err != nil {
			continue
		}
		if !msgTime.Before(t) {
			filtered = append(filtered, msg)
		}
	}
	return filtered
}

func displaySessionHeader(out io.Writer, session *internal.Session) {
	if session == nil {
		return
	}
	_, _ = fmt.Fprintln(out, sessionHeaderStyle.Render(fmt.Sprintf("💬 %s", session.Metadata.Title)))

	metaParts := []string{"ID: " + session.ID}
	if session.Metadata.CreatedAt != "" {
		metaParts = append(metaParts, "Created: "+session.Metadata.CreatedAt)
	}
	if session.Metadata.UpdatedAt != "" {
		metaParts = append(metaParts, "Updated: "+relativeTime(session.Metadata.UpdatedAt))
	}
	metaParts = append(metaParts, fmt.Sprintf("Messages: %d", session.Metadata.MessageCount))
	if session.Project != "" {
		metaParts = append(metaParts, "Project: "+session.Project)
	}
	_, _ = fmt.Fprintln(out, sessionMetaStyle.Render(strings.Join(metaParts, " • ")))
	_, _ = fmt.Fprintln(out)
}

func displayMessage(out io.Writer, index int, msg internal.Message, total int) {
	var actorStyle lipgloss.Style
	var actorLabel string

	switch msg.Actor {
	case "user":
		actorStyle = internal.UserStyle.Padding(0, 1)
		actorLabel = "👤 User"
	case "assistant":
		actorStyle = internal.AssistantStyle.Padding(0, 1)
		actorLabel = "🤖 Assistant"
	default:
		actorStyle = toolMessageStyle
		actorLabel = fmt.Sprintf("🔧 %s", msg.Actor)
	}

	header := actorStyle.Render(actorLabel) + " " + timestampStyle.Render(fmt.Sprintf("[%d/%d]", index, total))
	if msg.Timestamp != "" {
		if t, err := time.Parse(time.RFC3339, msg.Timestamp); err == nil {
			header += " " + timestampStyle.Render(t.Format("15:04:05"))
		} else {
			header += " " + timestampStyle.Render(msg.Timestamp)
		}
	}
	if msg.Model != "" {
		header += " " + timestampStyle.Render(msg.Model)
	}
	_, _ = fmt.Fprintln(out, header)

	content := strings.TrimSpace(msg.Content)
	switch {
	case content == "":
		_, _ = fmt.Fprintln(out, messageContentStyle.Foreground(lipgloss.Color("240")).Render("(empty message)"))
	case msg.Actor == "tool":
		_, _ = fmt.Fprintln(out, messageContentStyle.Foreground(lipgloss.Color("245")).Render(clipLines(content, maxToolLines)))
	default:
		thinking, text := internal.SplitThinking(content)
		if thinking != "" {
			_, _ = fmt.Fprintln(out, thinkingStyle.Render(wrapText(thinking, 80)))
		}
		if text != "" {
			_, _ = fmt.Fprintln(out, messageContentStyle.Render(wrapText(text, 80)))
		}
	}
	_, _ = fmt.Fprintln(out)
}

// clipLines keeps the first n lines of text and notes how many were cut
func clipLines(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= n {
		return text
	}
	return strings.Join(lines[:n], "\n") + fmt.Sprintf("\n... (%d more line(s))", len(lines)-n)
}

// wrapText breaks lines longer than width at word boundaries
func wrapText(text string, width int) string {
	lines := strings.Split(text, "\n")
	var wrapped []string

	for _, line := range lines {
		if utf8.RuneCountInString(line) <= width {
			wrapped = append(wrapped, line)
			continue
		}

		currentLine := ""
		for _, word := range strings.Fields(line) {
			switch {
			case currentLine == "":
				currentLine = word
			case utf8.RuneCountInString(currentLine)+utf8.RuneCountInString(word)+1 > width:
				wrapped = append(wrapped, currentLine)
				currentLine = word
			default:
				currentLine += " " + word
			}
		}
		if currentLine != "" {
			wrapped = append(wrapped, currentLine)
		}
	}

	return strings.Join(wrapped, "\n")
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit number of messages to show")
	showCmd.Flags().StringVar(&since, "since", "", "Show messages since timestamp (RFC3339)")
	showCmd.Flags().BoolVar(&showTools, "tools", false, "Show tool calls and their results")
	showCmd.Flags().BoolVar(&showThinking, "thinking", false, "Show assistant thinking")
}
