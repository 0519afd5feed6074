package internal

import (
	"encoding/json"
	"fmt"
)

// RecordKind is the "type" discriminator of one JSONL line
type RecordKind string

const (
	RecordKindUser      RecordKind = "user"
	RecordKindAssistant RecordKind = "assistant"
	RecordKindSummary   RecordKind = "summary"
	RecordKindOther     RecordKind = "other"
)

// Role is the speaker of a reconstructed message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// BlockKind identifies the shape of a content block
type BlockKind string

const (
	BlockKindText       BlockKind = "text"
	BlockKindToolUse    BlockKind = "tool_use"
	BlockKindToolResult BlockKind = "tool_result"
	BlockKindThinking   BlockKind = "thinking"
	BlockKindUnknown    BlockKind = "unknown"
)

// MatchKind records which part of a record a search hit came from
type MatchKind string

const (
	MatchKindContent              MatchKind = "content"
	MatchKindThinking             MatchKind = "thinking"
	MatchKindToolName             MatchKind = "tool_name"
	MatchKindToolInput            MatchKind = "tool_input"
	MatchKindToolResult           MatchKind = "tool_result"
	MatchKindToolStructuredResult MatchKind = "tool_structured_result"
)

// RawRecord represents one decoded JSONL line
type RawRecord struct {
	ParentID         string
	SessionID        string
	WorkingDirectory string
	Kind             RecordKind
	UUID             string
	MessageID        string // provider message id, shared by streamed fragments
	Model            string
	Version          string
	Timestamp        string
	Content          MessageContent
	ToolResult       json.RawMessage // toolUseResult payload

	// Only set for summary records
	LeafID      string
	SummaryText string
}

// IsConversational reports whether the record can become a chat message
func (r *RawRecord) IsConversational() bool {
	return r.Kind == RecordKindUser || r.Kind == RecordKindAssistant
}

// ContentBlock is one typed element of a block-sequence message.
// ToolCallID holds the producer id for tool_use blocks and the
// consumer reference for tool_result blocks.
type ContentBlock struct {
	Kind             BlockKind       `json:"type" yaml:"type"`
	Text             string          `json:"text,omitempty" yaml:"text,omitempty"`
	ToolName         string          `json:"name,omitempty" yaml:"name,omitempty"`
	ToolInput        json.RawMessage `json:"input,omitempty" yaml:"-"`
	ToolCallID       string          `json:"tool_use_id,omitempty" yaml:"tool_use_id,omitempty"`
	ResultText       string          `json:"content,omitempty" yaml:"content,omitempty"`
	StructuredResult json.RawMessage `json:"tool_use_result,omitempty" yaml:"-"`
	ThinkingText     string          `json:"thinking,omitempty" yaml:"thinking,omitempty"`
}

// NewTextBlock creates a text block
func NewTextBlock(text string) ContentBlock {
	return ContentBlock{Kind: BlockKindText, Text: text}
}

// MessageContent is either plain text or an ordered sequence of blocks.
// The variant is decided once when the record is parsed.
type MessageContent struct {
	text     string
	blocks   []ContentBlock
	isBlocks bool
}

// PlainText creates text content
func PlainText(text string) MessageContent {
	return MessageContent{text: text}
}

// Blocks creates block content
func Blocks(blocks ...ContentBlock) MessageContent {
	if blocks == nil {
		blocks = []ContentBlock{}
	}
	return MessageContent{blocks: blocks, isBlocks: true}
}

// IsBlocks reports whether the content is a block sequence
func (c MessageContent) IsBlocks() bool {
	return c.isBlocks
}

// Text returns the plain text variant (empty for block content)
func (c MessageContent) Text() string {
	return c.text
}

// BlockList returns the block variant (nil for plain text)
func (c MessageContent) BlockList() []ContentBlock {
	return c.blocks
}

// Append adds the other content after this one. Plain text on either
// side becomes a text block; the result is always block content.
func (c MessageContent) Append(other MessageContent) MessageContent {
	var blocks []ContentBlock
	if c.isBlocks {
		blocks = append(blocks, c.blocks...)
	} else {
		blocks = append(blocks, NewTextBlock(c.text))
	}
	if other.isBlocks {
		blocks = append(blocks, other.blocks...)
	} else {
		blocks = append(blocks, NewTextBlock(other.text))
	}
	return Blocks(blocks...)
}

// MarshalJSON encodes the content untagged: a string or an array
func (c MessageContent) MarshalJSON() ([]byte, error) {
	if c.isBlocks {
		return json.Marshal(c.blocks)
	}
	return json.Marshal(c.text)
}

// UnmarshalJSON accepts either a string or an array of blocks
func (c *MessageContent) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*c = PlainText(text)
		return nil
	}
	var blocks []ContentBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		return fmt.Errorf("content is neither text nor blocks: %w", err)
	}
	*c = Blocks(blocks...)
	return nil
}

// ChatMessage is one logical message of a reconstructed conversation
type ChatMessage struct {
	ID               string         `json:"id"`
	ParentID         string         `json:"parent_id,omitempty"`
	Timestamp        string         `json:"timestamp"`
	Role             Role           `json:"role"`
	Content          MessageContent `json:"content"`
	WorkingDirectory string         `json:"working_directory,omitempty"`
	AgentVersion     string         `json:"agent_version,omitempty"`
	Model            string         `json:"model,omitempty"`
}

// ExtractText returns the human-readable text of the message with
// backspace edits applied
func (m *ChatMessage) ExtractText() string {
	return CollapseBackspaces(ContentText(m.Content))
}

// HasToolCalls reports whether the message contains a tool_use block
func (m *ChatMessage) HasToolCalls() bool {
	for _, block := range m.Content.BlockList() {
		if block.Kind == BlockKindToolUse {
			return true
		}
	}
	return false
}

// ChatSession is the listing metadata of one session file
type ChatSession struct {
	ID           string `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title"`
	CreatedAt    string `json:"created_at" yaml:"created_at"`
	LastUpdated  string `json:"last_updated" yaml:"last_updated"`
	ProjectPath  string `json:"project_path" yaml:"project_path"`
	MessageCount int    `json:"message_count" yaml:"message_count"`
}

// ProjectFolder groups the sessions stored in one project directory
type ProjectFolder struct {
	Name        string        `json:"name"`
	StoragePath string        `json:"storage_path"`
	Sessions    []ChatSession `json:"sessions"`
}

// LatestUpdate returns the most recent session update, or "" for no sessions
func (p *ProjectFolder) LatestUpdate() string {
	latest := ""
	for _, s := range p.Sessions {
		if s.LastUpdated > latest {
			latest = s.LastUpdated
		}
	}
	return latest
}

// SearchResult is one structural match of a query
type SearchResult struct {
	SessionID string    `json:"session_id"`
	MessageID string    `json:"message_id"`
	Snippet   string    `json:"snippet"`
	MatchKind MatchKind `json:"match_kind"`
}
