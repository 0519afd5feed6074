package internal

import (
	"fmt"
	"strings"
)

const (
	thinkingOpen  = "<thinking>\n"
	thinkingClose = "\n</thinking>"
)

// Normalizer flattens reconstructed conversations into export transcripts
type Normalizer struct {
	// IncludeTools renders each tool call as its own "tool" entry
	IncludeTools bool
	// IncludeThinking prepends thinking blocks to assistant text
	IncludeThinking bool
}

// NewNormalizer creates a new Normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// NormalizeSession converts a session and its messages to a transcript
func (n *Normalizer) NormalizeSession(meta *ChatSession, messages []ChatMessage) (*Session, error) {
	if meta == nil {
		return nil, fmt.Errorf("session is nil")
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("session %s has no messages", meta.ID)
	}

	normalized := make([]Message, 0, len(messages))
	for i := range messages {
		normalized = append(normalized, n.normalizeMessage(&messages[i])...)
	}

	return &Session{
		ID:       meta.ID,
		Project:  meta.ProjectPath,
		Source:   "claude-projects",
		Messages: normalized,
		Metadata: Metadata{
			Title:        meta.Title,
			CreatedAt:    meta.CreatedAt,
			UpdatedAt:    meta.LastUpdated,
			MessageCount: len(messages),
		},
	}, nil
}

// normalizeMessage yields the text entry of a message, followed by one
// entry per tool call when tools are included
func (n *Normalizer) normalizeMessage(msg *ChatMessage) []Message {
	var out []Message

	text := msg.ExtractText()
	if n.IncludeThinking {
		if thinking := thinkingText(msg.Content); thinking != "" {
			text = strings.TrimSpace(thinkingOpen + thinking + thinkingClose + "\n\n" + text)
		}
	}
	if strings.TrimSpace(text) != "" {
		out = append(out, Message{
			Timestamp: msg.Timestamp,
			Actor:     string(msg.Role),
			Content:   text,
			Model:     msg.Model,
		})
	}

	if !n.IncludeTools {
		return out
	}
	for _, block := range msg.Content.BlockList() {
		if block.Kind != BlockKindToolUse {
			continue
		}
		out = append(out, Message{
			Timestamp: msg.Timestamp,
			Actor:     "tool",
			Content:   FormatToolCall(block),
		})
	}
	return out
}

// FormatToolCall renders a tool_use block with its paired result
func FormatToolCall(block ContentBlock) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tool: %s", block.ToolName)
	if len(block.ToolInput) > 0 {
		fmt.Fprintf(&b, "\nInput: %s", block.ToolInput)
	}
	if block.ResultText != "" {
		fmt.Fprintf(&b, "\nResult: %s", block.ResultText)
	}
	return b.String()
}

func thinkingText(content MessageContent) string {
	var parts []string
	for _, block := range content.BlockList() {
		if block.Kind == BlockKindThinking && block.ThinkingText != "" {
			parts = append(parts, block.ThinkingText)
		}
	}
	return strings.Join(parts, "\n")
}

// SplitThinking separates the leading thinking section of a transcript
// entry from the rest of its text
func SplitThinking(content string) (thinking, text string) {
	if !strings.HasPrefix(content, thinkingOpen) {
		return "", content
	}
	end := strings.Index(content, thinkingClose)
	if end < 0 {
		return "", content
	}
	return content[len(thinkingOpen):end], strings.TrimSpace(content[end+len(thinkingClose):])
}
