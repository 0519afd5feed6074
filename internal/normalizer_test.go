package internal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalizerFixture() (*ChatSession, []ChatMessage) {
	meta := &ChatSession{
		ID:          "s1",
		Title:       "Fix the login bug",
		CreatedAt:   "2024-03-01T10:00:00Z",
		LastUpdated: "2024-03-01T10:00:05Z",
		ProjectPath: "/home/dev/project",
	}
	messages := []ChatMessage{
		{ID: "u1", Role: RoleUser, Timestamp: "2024-03-01T10:00:00Z", Content: PlainText("Fix the login bug")},
		{
			ID:        "a1#msg_1",
			Role:      RoleAssistant,
			Timestamp: "2024-03-01T10:00:05Z",
			Model:     "claude-sonnet",
			Content: Blocks(
				ContentBlock{Kind: BlockKindThinking, ThinkingText: "check auth.go first"},
				NewTextBlock("Looking at auth.go"),
				ContentBlock{Kind: BlockKindToolUse, ToolCallID: "t1", ToolName: "Read", ToolInput: json.RawMessage(`{"file_path":"auth.go"}`), ResultText: "package auth"},
			),
		},
	}
	return meta, messages
}

func TestNormalizeSession(t *testing.T) {
	meta, messages := normalizerFixture()

	session, err := NewNormalizer().NormalizeSession(meta, messages)
	require.NoError(t, err)

	assert.Equal(t, "s1", session.ID)
	assert.Equal(t, "/home/dev/project", session.Project)
	assert.Equal(t, "claude-projects", session.Source)
	assert.Equal(t, "Fix the login bug", session.Metadata.Title)
	assert.Equal(t, "2024-03-01T10:00:00Z", session.Metadata.CreatedAt)
	assert.Equal(t, "2024-03-01T10:00:05Z", session.Metadata.UpdatedAt)
	assert.Equal(t, 2, session.Metadata.MessageCount)

	require.Len(t, session.Messages, 2)
	assert.Equal(t, Message{Timestamp: "2024-03-01T10:00:00Z", Actor: "user", Content: "Fix the login bug"}, session.Messages[0])
	assert.Equal(t, "assistant", session.Messages[1].Actor)
	assert.Equal(t, "Looking at auth.go", session.Messages[1].Content)
	assert.Equal(t, "claude-sonnet", session.Messages[1].Model)
}

func TestNormalizeSession_ToolsAndThinking(t *testing.T) {
	meta, messages := normalizerFixture()
	n := &Normalizer{IncludeTools: true, IncludeThinking: true}

	session, err := n.NormalizeSession(meta, messages)
	require.NoError(t, err)
	require.Len(t, session.Messages, 3)

	assert.Equal(t, "<thinking>\ncheck auth.go first\n</thinking>\n\nLooking at auth.go", session.Messages[1].Content)
	assert.Equal(t, "tool", session.Messages[2].Actor)
	assert.Equal(t, "Tool: Read\nInput: {\"file_path\":\"auth.go\"}\nResult: package auth", session.Messages[2].Content)
}

func TestNormalizeSession_SkipsEmptyText(t *testing.T) {
	meta, _ := normalizerFixture()
	messages := []ChatMessage{
		{ID: "a1", Role: RoleAssistant, Content: Blocks(ContentBlock{Kind: BlockKindToolUse, ToolName: "Bash"})},
		{ID: "u1", Role: RoleUser, Content: PlainText("ab\u0008c")},
	}

	session, err := NewNormalizer().NormalizeSession(meta, messages)
	require.NoError(t, err)
	require.Len(t, session.Messages, 1)
	assert.Equal(t, "ac", session.Messages[0].Content)
	assert.Equal(t, 2, session.Metadata.MessageCount)
}

func TestNormalizeSession_Errors(t *testing.T) {
	_, err := NewNormalizer().NormalizeSession(nil, nil)
	assert.Error(t, err)

	meta, _ := normalizerFixture()
	_, err = NewNormalizer().NormalizeSession(meta, nil)
	assert.ErrorContains(t, err, "s1")
}

func TestFormatToolCall(t *testing.T) {
	assert.Equal(t, "Tool: Bash", FormatToolCall(ContentBlock{Kind: BlockKindToolUse, ToolName: "Bash"}))
}

func TestSplitThinking(t *testing.T) {
	tests := []struct {
		input        string
		wantThinking string
		wantText     string
	}{
		{input: "plain", wantThinking: "", wantText: "plain"},
		{input: "<thinking>\nplan\n</thinking>\n\nanswer", wantThinking: "plan", wantText: "answer"},
		{input: "<thinking>\nplan\n</thinking>", wantThinking: "plan", wantText: ""},
		{input: "<thinking>\nunterminated", wantThinking: "", wantText: "<thinking>\nunterminated"},
	}

	for _, tt := range tests {
		thinking, text := SplitThinking(tt.input)
		assert.Equal(t, tt.wantThinking, thinking, tt.input)
		assert.Equal(t, tt.wantText, text, tt.input)
	}
}

func TestSplitThinking_RoundTrip(t *testing.T) {
	meta, messages := normalizerFixture()
	session, err := (&Normalizer{IncludeThinking: true}).NormalizeSession(meta, messages)
	require.NoError(t, err)

	thinking, text := SplitThinking(session.Messages[1].Content)
	assert.Equal(t, "check auth.go first", thinking)
	assert.Equal(t, "Looking at auth.go", text)
}
