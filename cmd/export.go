package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/claude-session/internal"
	"github.com/iksnae/claude-session/internal/export"
	"github.com/spf13/cobra"
)

var (
	format         string
	outputDir      string
	project        string
	sessionID      string
	exportTools    bool
	exportThinking bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sessions to file",
	Long: `Export chat sessions to various formats (jsonl, md, yaml, json, sqlite).

You can export all sessions, filter by project, or export a specific session by ID.
The sqlite format writes every session into a single sessions.sqlite archive.
Use 'claude-session list' to see available session IDs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, exporterErr := export.NewExporter(format)
		archiver, isArchive := export.NewArchiveExporter(format)
		if exporterErr != nil && !isArchive {
			return exporterErr
		}

		svc := newService()
		normalizer := internal.NewNormalizer()
		normalizer.IncludeTools = exportTools
		normalizer.IncludeThinking = exportThinking

		var sessions []*internal.Session
		ctx := cmd.Context()
		err := internal.ShowProgress(ctx, "Reconstructing sessions", func() error {
			if sessionID != "" {
				meta, messages, err := svc.GetSession(ctx, sessionID)
				if err != nil {
					return err
				}
				session, err := normalizer.NormalizeSession(meta, messages)
				if err != nil {
					return err
				}
				sessions = []*internal.Session{session}
				return nil
			}
			var err error
			sessions, err = svc.Transcripts(ctx, normalizer, project)
			return err
		})
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			internal.PrintWarning("No sessions matched, nothing to export")
			return nil
		}

		if isArchive {
			path := filepath.Join(outputDir, "sessions."+archiver.Extension())
			err = internal.ShowProgressWithSteps(ctx, []internal.ProgressStep{
				{Message: "Creating " + outputDir, Fn: func() error { return os.MkdirAll(outputDir, 0755) }},
				{Message: fmt.Sprintf("Archiving %d session(s) to %s", len(sessions), path), Fn: func() error {
					return archiver.ExportAll(sessions, path)
				}},
			})
			if err != nil {
				return err
			}
			internal.PrintSuccess(fmt.Sprintf("Export complete: %d session(s) archived in %s", len(sessions), path))
			return nil
		}

		exported := 0
		err = internal.ShowProgressWithSteps(ctx, []internal.ProgressStep{
			{Message: "Creating " + outputDir, Fn: func() error { return os.MkdirAll(outputDir, 0755) }},
			{Message: fmt.Sprintf("Exporting %d session(s) to %s", len(sessions), outputDir), Fn: func() error {
				for _, session := range sessions {
					if err := writeSession(exporter, session, outputDir); err != nil {
						internal.LogError("%v", err)
						continue
					}
					exported++
				}
				return nil
			}},
		})
		if err != nil {
			return err
		}

		internal.PrintSuccess(fmt.Sprintf("Export complete: %d session(s) exported to %s", exported, outputDir))
		return nil
	},
}

func writeSession(exporter export.Exporter, session *internal.Session, dir string) error {
	path := filepath.Join(dir, fmt.Sprintf("session_%s.%s", session.ID, exporter.Extension()))

	file, err := os.Create(path)
	if err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}

	if err := exporter.Export(session, file); err != nil {
		_ = file.Close()
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}

	if err := file.Close(); err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Export format (jsonl, md, yaml, json, sqlite)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory")
	exportCmd.Flags().StringVar(&project, "project", "", "Filter by project path or project directory name")
	exportCmd.Flags().StringVar(&sessionID, "session-id", "", "Export a specific session by ID")
	exportCmd.Flags().BoolVar(&exportTools, "tools", false, "Include tool calls and results")
	exportCmd.Flags().BoolVar(&exportThinking, "thinking", false, "Include assistant thinking")
}
