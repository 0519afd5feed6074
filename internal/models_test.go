package internal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageContent_JSON(t *testing.T) {
	data, err := json.Marshal(PlainText("hello"))
	require.NoError(t, err)
	assert.Equal(t, `"hello"`, string(data))

	data, err = json.Marshal(Blocks(NewTextBlock("hi")))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"text","text":"hi"}]`, string(data))

	data, err = json.Marshal(Blocks())
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	var content MessageContent
	require.NoError(t, json.Unmarshal([]byte(`[{"type":"tool_use","name":"Bash","tool_use_id":"t1"}]`), &content))
	require.True(t, content.IsBlocks())
	assert.Equal(t, "Bash", content.BlockList()[0].ToolName)

	assert.Error(t, json.Unmarshal([]byte(`42`), &content))
}

func TestMessageContent_Append(t *testing.T) {
	tests := []struct {
		name  string
		left  MessageContent
		right MessageContent
		want  []ContentBlock
	}{
		{
			name:  "text and text",
			left:  PlainText("a"),
			right: PlainText("b"),
			want:  []ContentBlock{NewTextBlock("a"), NewTextBlock("b")},
		},
		{
			name:  "blocks and text",
			left:  Blocks(NewTextBlock("a")),
			right: PlainText("b"),
			want:  []ContentBlock{NewTextBlock("a"), NewTextBlock("b")},
		},
		{
			name:  "text and blocks",
			left:  PlainText("a"),
			right: Blocks(NewTextBlock("b"), NewTextBlock("c")),
			want:  []ContentBlock{NewTextBlock("a"), NewTextBlock("b"), NewTextBlock("c")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.left.Append(tt.right)
			require.True(t, got.IsBlocks())
			assert.Equal(t, tt.want, got.BlockList())
		})
	}
}

func TestMessageContent_AppendDoesNotAlias(t *testing.T) {
	left := Blocks(NewTextBlock("a"))
	_ = left.Append(PlainText("b"))
	assert.Len(t, left.BlockList(), 1)
}

func TestChatMessage_HasToolCalls(t *testing.T) {
	plain := ChatMessage{Content: PlainText("tool_use")}
	assert.False(t, plain.HasToolCalls())

	withTool := ChatMessage{Content: Blocks(NewTextBlock("x"), ContentBlock{Kind: BlockKindToolUse})}
	assert.True(t, withTool.HasToolCalls())
}

func TestSession_MetadataAlwaysEncoded(t *testing.T) {
	data, err := json.Marshal(Session{ID: "s1", Source: "claude-projects", Messages: []Message{}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"metadata":{"message_count":0}`)
}

func TestProjectFolder_LatestUpdate(t *testing.T) {
	project := ProjectFolder{Sessions: []ChatSession{
		{LastUpdated: "2024-01-01T00:00:00Z"},
		{LastUpdated: "2024-03-01T00:00:00Z"},
		{LastUpdated: ""},
	}}
	assert.Equal(t, "2024-03-01T00:00:00Z", project.LatestUpdate())

	empty := ProjectFolder{}
	assert.Equal(t, "", empty.LatestUpdate())
}
