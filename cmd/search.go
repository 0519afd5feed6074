package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/claude-session/internal"
	"github.com/spf13/cobra"
)

var (
	searchLimit int
	searchJSON  bool
)

var matchKindStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("214"))

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search every session for text",
	Long: `Search message text, thinking, tool names, tool inputs and tool results of
every session. The match is case-insensitive; message text matches are listed first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := newService().Search(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		if searchLimit > 0 && len(results) > searchLimit {
			results = results[:searchLimit]
		}

		out := cmd.OutOrStdout()
		if searchJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}
		displaySearchResults(out, args[0], results)
		return nil
	},
}

func displaySearchResults(out io.Writer, query string, results []internal.SearchResult) {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("🔍 No matches for %q", query)))
		return
	}

	_, _ = fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("🔍 %d match(es) for %q", len(results), query)))
	_, _ = fmt.Fprintln(out)
	for _, r := range results {
		_, _ = fmt.Fprintf(out, "%s %s %s\n",
			matchKindStyle.Render("["+string(r.MatchKind)+"]"),
			idStyle.Render(r.SessionID),
			dateStyle.Render(r.MessageID),
		)
		_, _ = fmt.Fprintf(out, "   %s\n", r.Snippet)
	}
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Limit number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print results as JSON")
}
