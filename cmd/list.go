package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/iksnae/claude-session/internal"
	"github.com/spf13/cobra"
)

var (
	listLimit int
	listJSON  bool
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	projectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Bold(true)
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects and their sessions",
	Long: `List every project under the projects directory with its sessions,
most recently updated first. Sessions without any user or assistant message
are not shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := newService().ListProjects(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}

		out := cmd.OutOrStdout()
		if listJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(projects)
		}

		displayProjects(out, projects, listLimit)
		return nil
	},
}

func displayProjects(out io.Writer, projects []internal.ProjectFolder, limit int) {
	if len(projects) == 0 {
		_, _ = fmt.Fprintln(out, headerStyle.Render("📋 No sessions found"))
		return
	}

	total := 0
	for _, p := range projects {
		total += len(p.Sessions)
	}
	_, _ = fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📋 Found %d session(s) in %d project(s)", total, len(projects))))
	_, _ = fmt.Fprintln(out)

	for _, project := range projects {
		_, _ = fmt.Fprintln(out, projectStyle.Render("📁 "+project.Name))

		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Title")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Updated")+"\t")

		sessions := project.Sessions
		if limit > 0 && limit < len(sessions) {
			sessions = sessions[:limit]
		}
		for _, session := range sessions {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
				idStyle.Render(session.ID),
				session.Title,
				countStyle.Render(strconv.Itoa(session.MessageCount)),
				dateStyle.Render(relativeTime(session.LastUpdated)),
			)
		}
		_ = w.Flush()

		if hidden := len(project.Sessions) - len(sessions); hidden > 0 {
			_, _ = fmt.Fprintln(out, dateStyle.Render(fmt.Sprintf("   ... (%d more session(s))", hidden)))
		}
		_, _ = fmt.Fprintln(out)
	}

	_, _ = fmt.Fprintln(out, idStyle.Render("💡 Tip: Use the full ID (e.g., ")+
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(projects[0].Sessions[0].ID)+
		idStyle.Render(") with `claude-session show <id>`"))
}

// relativeTime renders an RFC 3339 timestamp as "3 days ago"
func relativeTime(timestamp string) string {
	if timestamp == "" {
		return "—"
	}
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return strings.TrimSpace(timestamp)
	}
	return humanize.Time(t)
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Limit number of sessions shown per project")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print projects as JSON")
}
