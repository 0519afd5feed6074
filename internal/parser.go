package internal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	errUnsupportedKind = errors.New("unsupported record type")
	errMissingField    = errors.New("missing required field")
)

// wireRecord mirrors the on-disk JSONL layout. Pointer fields are required.
type wireRecord struct {
	ParentUUID    *string         `json:"parentUuid"`
	SessionID     *string         `json:"sessionId"`
	Cwd           *string         `json:"cwd"`
	Type          string          `json:"type"`
	UUID          *string         `json:"uuid"`
	Timestamp     *string         `json:"timestamp"`
	Version       *string         `json:"version"`
	Message       *wireMessage    `json:"message"`
	ToolUseResult json.RawMessage `json:"toolUseResult"`

	LeafUUID *string `json:"leafUuid"`
	Summary  *string `json:"summary"`
}

type wireMessage struct {
	Content json.RawMessage `json:"content"`
	ID      *string         `json:"id"`
	Model   *string         `json:"model"`
}

// wireBlock holds every field a content block may carry
type wireBlock struct {
	Type      string          `json:"type"`
	Text      *string         `json:"text"`
	Name      *string         `json:"name"`
	Input     json.RawMessage `json:"input"`
	ID        *string         `json:"id"`
	ToolUseID *string         `json:"tool_use_id"`
	Content   json.RawMessage `json:"content"`
	Thinking  *string         `json:"thinking"`
}

// ParseRecord decodes one JSONL line. Lines that are not JSON, that carry
// an unsupported type or that miss a required field return an error; the
// caller skips them.
func ParseRecord(line []byte) (*RawRecord, error) {
	var wire wireRecord
	if err := json.Unmarshal(line, &wire); err != nil {
		return nil, fmt.Errorf("failed to parse record JSON: %w", err)
	}

	switch RecordKind(wire.Type) {
	case RecordKindSummary:
		if wire.LeafUUID == nil || wire.Summary == nil {
			return nil, fmt.Errorf("%w: leafUuid/summary", errMissingField)
		}
		return &RawRecord{
			Kind:        RecordKindSummary,
			LeafID:      *wire.LeafUUID,
			SummaryText: *wire.Summary,
		}, nil
	case RecordKindUser, RecordKindAssistant:
	default:
		return nil, fmt.Errorf("%w: %q", errUnsupportedKind, wire.Type)
	}

	for name, field := range map[string]*string{
		"sessionId": wire.SessionID,
		"cwd":       wire.Cwd,
		"uuid":      wire.UUID,
		"timestamp": wire.Timestamp,
		"version":   wire.Version,
	} {
		if field == nil {
			return nil, fmt.Errorf("%w: %s", errMissingField, name)
		}
	}
	if wire.Message == nil {
		return nil, fmt.Errorf("%w: message", errMissingField)
	}
	if wire.Message.Content == nil {
		return nil, fmt.Errorf("%w: message.content", errMissingField)
	}

	rec := &RawRecord{
		ParentID:         deref(wire.ParentUUID),
		SessionID:        *wire.SessionID,
		WorkingDirectory: *wire.Cwd,
		Kind:             RecordKind(wire.Type),
		UUID:             *wire.UUID,
		MessageID:        deref(wire.Message.ID),
		Model:            deref(wire.Message.Model),
		Version:          *wire.Version,
		Timestamp:        *wire.Timestamp,
		Content:          ParseContent(wire.Message.Content),
	}
	if !isJSONNull(wire.ToolUseResult) {
		rec.ToolResult = wire.ToolUseResult
	}
	return rec, nil
}

// ParseContent decodes a message.content value. Strings become plain
// text, arrays become blocks (undecodable elements are dropped) and any
// other JSON value is kept as its compact text.
func ParseContent(raw json.RawMessage) MessageContent {
	raw = bytes.TrimSpace(raw)
	if isJSONNull(raw) {
		return PlainText("")
	}

	switch raw[0] {
	case '"':
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			return PlainText(text)
		}
	case '[':
		var elements []json.RawMessage
		if err := json.Unmarshal(raw, &elements); err == nil {
			blocks := make([]ContentBlock, 0, len(elements))
			for _, element := range elements {
				block, err := ParseBlock(element)
				if err != nil {
					LogDebug("Dropping undecodable content block: %v", err)
					continue
				}
				blocks = append(blocks, block)
			}
			return Blocks(blocks...)
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return PlainText(string(raw))
	}
	return PlainText(compact.String())
}

// ParseBlock decodes one content block element
func ParseBlock(raw json.RawMessage) (ContentBlock, error) {
	var wire wireBlock
	if err := json.Unmarshal(raw, &wire); err != nil {
		return ContentBlock{}, fmt.Errorf("failed to parse content block: %w", err)
	}

	block := ContentBlock{
		Kind:         blockKind(wire.Type),
		Text:         deref(wire.Text),
		ToolName:     deref(wire.Name),
		ResultText:   resultText(wire.Content),
		ThinkingText: deref(wire.Thinking),
	}
	if !isJSONNull(wire.Input) {
		block.ToolInput = wire.Input
	}

	if block.Kind == BlockKindToolUse {
		block.ToolCallID = deref(wire.ID)
	} else {
		block.ToolCallID = deref(wire.ToolUseID)
	}

	return block, nil
}

func blockKind(t string) BlockKind {
	switch BlockKind(t) {
	case BlockKindText, BlockKindToolUse, BlockKindToolResult, BlockKindThinking:
		return BlockKind(t)
	default:
		return BlockKindUnknown
	}
}

// resultText reads a tool_result "content" that is either a string or a
// list of text blocks
func resultText(raw json.RawMessage) string {
	if isJSONNull(raw) {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	var parts []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &parts); err != nil {
		return ""
	}
	texts := make([]string, 0, len(parts))
	for _, part := range parts {
		if part.Type == string(BlockKindText) && part.Text != "" {
			texts = append(texts, part.Text)
		}
	}
	return strings.Join(texts, "\n")
}

func isJSONNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
