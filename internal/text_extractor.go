package internal

import (
	"strings"
	"unicode/utf8"
)

const (
	// UntitledSessionTitle is used when a session has no usable text
	UntitledSessionTitle = "Untitled Chat"

	maxTitleLength = 50
	backspace      = '\u0008'
)

// ContentText returns the text of a message content: the plain text, or
// the text of every block that has one, joined by newlines
func ContentText(content MessageContent) string {
	if !content.IsBlocks() {
		return content.Text()
	}
	var parts []string
	for _, block := range content.BlockList() {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// CollapseBackspaces replays backspace characters left to right: each one
// deletes the character emitted just before it. A backspace with nothing
// to delete is discarded.
func CollapseBackspaces(text string) string {
	if !strings.ContainsRune(text, backspace) {
		return text
	}

	result := make([]rune, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		if r == backspace {
			if len(result) > 0 {
				result = result[:len(result)-1]
			}
			continue
		}
		result = append(result, r)
	}
	return string(result)
}

// GenerateTitle derives a session title from the first user message text.
// Leading tag-only lines such as <command-name>/init</command-name> are
// skipped and the first substantive line is truncated to 50 characters.
func GenerateTitle(text string) string {
	content := strings.TrimSpace(CollapseBackspaces(text))
	if content == "" {
		return UntitledSessionTitle
	}

	if strings.HasPrefix(content, "<") {
		for _, line := range strings.Split(content, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed != "" && !strings.HasPrefix(trimmed, "<") {
				content = line
				break
			}
		}
	}

	firstLine, _, _ := strings.Cut(content, "\n")
	firstLine = strings.TrimRight(firstLine, "\r")
	if utf8.RuneCountInString(firstLine) <= maxTitleLength {
		return firstLine
	}
	runes := []rune(firstLine)
	return string(runes[:maxTitleLength-3]) + "..."
}
