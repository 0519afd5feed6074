package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	elapsedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

	// UserStyle and AssistantStyle label conversation turns
	UserStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	AssistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 100 * time.Millisecond

// ProgressStep represents a single step in a multi-step process
type ProgressStep struct {
	Message string
	Fn      func() error
}

// ShowProgress runs fn behind a spinner when stderr is a terminal.
// Otherwise the message is logged and fn runs directly.
func ShowProgress(ctx context.Context, message string, fn func() error) error {
	if !isTerminal(os.Stderr) {
		LogInfo("%s", message)
		return fn()
	}
	return runWithSpinner(ctx, os.Stderr, message, fn)
}

// ShowProgressWithSteps runs steps in order and stops at the first failure
func ShowProgressWithSteps(ctx context.Context, steps []ProgressStep) error {
	for i, step := range steps {
		msg := fmt.Sprintf("[%d/%d] %s", i+1, len(steps), step.Message)
		if err := ShowProgress(ctx, msg, step.Fn); err != nil {
			return fmt.Errorf("%s: %w", step.Message, err)
		}
	}
	return nil
}

// runWithSpinner animates a spinner on w until fn returns or ctx is done,
// then prints the outcome with the elapsed time
func runWithSpinner(ctx context.Context, w io.Writer, message string, fn func() error) error {
	started := time.Now()
	result := make(chan error, 1)
	go func() {
		result <- fn()
	}()

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case err := <-result:
			elapsed := elapsedStyle.Render(fmt.Sprintf("(%s)", time.Since(started).Round(time.Millisecond)))
			if err != nil {
				_, _ = fmt.Fprintf(w, "\r%s %s %s\n", errorStyle.Render("✗"), message, elapsed)
				return err
			}
			_, _ = fmt.Fprintf(w, "\r%s %s %s\n", successStyle.Render("✓"), message, elapsed)
			return nil
		case <-ctx.Done():
			_, _ = fmt.Fprintf(w, "\r%s %s\n", warningStyle.Render("…"), message)
			return ctx.Err()
		case <-ticker.C:
			_, _ = fmt.Fprintf(w, "\r%s %s", spinnerStyle.Render(spinnerFrames[frame%len(spinnerFrames)]), message)
		}
	}
}

// isTerminal checks if the writer is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}

// printStatus writes a styled symbol before the message on a terminal and
// the plain prefix otherwise
func printStatus(f *os.File, style lipgloss.Style, symbol, plainPrefix, message string) {
	if isTerminal(f) {
		_, _ = fmt.Fprintf(f, "%s %s\n", style.Render(symbol), message)
		return
	}
	_, _ = fmt.Fprintf(f, "%s%s\n", plainPrefix, message)
}

// PrintSuccess prints a success message to stdout
func PrintSuccess(message string) {
	printStatus(os.Stdout, successStyle, "✓", "", message)
}

// PrintError prints an error message to stderr
func PrintError(message string) {
	printStatus(os.Stderr, errorStyle, "✗", "", message)
}

// PrintWarning prints a warning to stderr
func PrintWarning(message string) {
	printStatus(os.Stderr, warningStyle, "⚠", "WARNING: ", message)
}
