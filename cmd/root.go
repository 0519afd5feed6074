package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/iksnae/claude-session/internal"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	projectsDir string
	configPath  string
	logFile     string
	version     string = "dev"
	commit      string = "unknown"
	date        string = "unknown"

	cfg       internal.Config
	logCloser io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "claude-session",
	Short: "Browse, search and export Claude Code chat sessions",
	Long: `A CLI tool to browse, search and export the chat sessions Claude Code
writes under ~/.claude/projects.

Each project directory holds one JSONL log per session. The tool rebuilds the
conversation from the raw records: streamed assistant fragments are merged and
tool results are attached to the tool calls that produced them.

Quick Start:
  claude-session list                    # List projects and sessions
  claude-session show <session-id>       # View a specific session
  claude-session search "migration"      # Search every session
  claude-session export --format md      # Export as Markdown
  claude-session serve                   # Run as an MCP stdio server`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := internal.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if projectsDir != "" {
			loaded.ProjectsDir = projectsDir
		}
		if logFile != "" {
			loaded.Log.File = logFile
		}
		cfg = loaded

		logCloser = internal.SetupLogging(os.Stderr, cfg.Log.File)
		if err := internal.SetLogLevel(cfg.Log.Level); err != nil {
			return err
		}
		if verbose {
			internal.SetVerbose(true)
		}
		internal.LogDebug("Using projects directory %s", cfg.ProjectsDir)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		internal.PrintError(fmt.Sprintf("Error: %v", err))
		os.Exit(1)
	}
}

// newService creates the engine for the loaded configuration
func newService() *internal.ChatService {
	return internal.NewChatService(cfg)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&projectsDir, "projects-dir", "", "Claude projects directory (default ~/.claude/projects)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/claude-session/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to a rotating file instead of stderr")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
