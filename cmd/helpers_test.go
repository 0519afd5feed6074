package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/iksnae/claude-session/testutil"
)

// writeProjects builds a projects tree with two sessions in one project
// and returns its root
func writeProjects(t *testing.T) string {
	t.Helper()
	root := testutil.CreateTempDir(t)

	testutil.WriteSession(t, root, "-home-dev-project", "s1.jsonl",
		testutil.UserRecord("session-1", "u1", "2024-03-01T10:00:00Z", "Fix the login bug"),
		testutil.AssistantRecord("session-1", "a1", "msg_1", "2024-03-01T10:00:05Z",
			testutil.TextBlock("Looking at auth.go"),
			testutil.ToolUseBlock("toolu_1", "Bash", map[string]interface{}{"command": "go test ./..."}),
		),
		testutil.UserRecord("session-1", "u2", "2024-03-01T10:00:09Z", []map[string]interface{}{
			testutil.ToolResultBlock("toolu_1", "ok"),
		}),
	)
	testutil.WriteSession(t, root, "-home-dev-project", "s2.jsonl",
		testutil.UserRecord("session-2", "u-old", "2024-01-01T09:00:00Z", "Old question"),
		testutil.SummaryRecord("u-old", "Legacy cleanup"),
	)
	return root
}

// emptyConfig writes an empty config file so the user's own config is
// never read
func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	testutil.WriteFile(t, path, []byte("{}\n"))
	return path
}

func resetFlags() {
	verbose = false
	projectsDir = ""
	configPath = ""
	logFile = ""
	listLimit = 0
	listJSON = false
	limit = 0
	since = ""
	showTools = false
	showThinking = false
	searchLimit = 0
	searchJSON = false
	format = "jsonl"
	outputDir = "./exports"
	project = ""
	sessionID = ""
	exportTools = false
	exportThinking = false
	healthcheckDetails = false

	// help and version values persist between Execute calls
	for _, c := range append(rootCmd.Commands(), rootCmd) {
		if f := c.Flags().Lookup("help"); f != nil {
			_ = f.Value.Set("false")
		}
	}
	if f := rootCmd.Flags().Lookup("version"); f != nil {
		_ = f.Value.Set("false")
	}
}

// executeCommand runs the root command against root and returns stdout
func executeCommand(t *testing.T, root string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append(args, "--projects-dir", root, "--config", emptyConfig(t)))

	err := rootCmd.Execute()
	return stdout.String(), err
}
