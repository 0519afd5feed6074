package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	healthcheckDetails bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that session logs can be located and read",
	Long: `Check the health of claude-session by verifying:
  • The projects directory can be listed
  • Every session file can be read
  • How many lines fail to decode

This command is useful for debugging storage issues, especially in CI/CD environments.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, sectionStyle.Render("🔍 Claude Session Health Check"))
		_, _ = fmt.Fprintln(out)

		_, _ = fmt.Fprintln(out, infoStyle.Render("Step 1: Reading projects directory..."))
		report, err := newService().Health(cmd.Context())
		if err != nil {
			_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Projects directory is not readable"))
			return fmt.Errorf("health check failed: %w", err)
		}
		_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Found %d project(s)", report.Projects)))
		if healthcheckDetails {
			_, _ = fmt.Fprintf(out, "   Directory: %s\n", report.ProjectsDir)
		}
		_, _ = fmt.Fprintln(out)

		_, _ = fmt.Fprintln(out, infoStyle.Render("Step 2: Reading session files..."))
		_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ %d session file(s) found", report.SessionFiles)))
		printProblem(out, report.UnreadableDirs, "project director(ies) could not be listed")
		printProblem(out, report.UnreadableFiles, "session file(s) could not be read")
		printProblem(out, report.MalformedLines, "line(s) could not be decoded")
		if healthcheckDetails {
			_, _ = fmt.Fprintf(out, "   Records: %d\n", report.Records)
		}
		_, _ = fmt.Fprintln(out)

		_, _ = fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
		_, _ = fmt.Fprintln(out)
		if report.Sessions == 0 {
			_, _ = fmt.Fprintln(out, warningStyle.Render("⚠️  Projects directory available but no sessions found"))
			return nil
		}
		_, _ = fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
		_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("   • Sessions: %d found", report.Sessions)))
		return nil
	},
}

// printProblem prints a warning line when n is non-zero
func printProblem(out io.Writer, n int, label string) {
	if n == 0 {
		return
	}
	_, _ = fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("⚠️  %d %s", n, label)))
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVar(&healthcheckDetails, "details", false, "Show detailed diagnostic information")
}
