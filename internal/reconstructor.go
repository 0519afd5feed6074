package internal

import "strings"

// Reconstructor folds the ordered raw records of one session file into
// the conversation a reader would recognize. The agent writes one logical
// assistant turn as several records sharing a provider message id, and
// writes tool results as separate user records; both are merged back into
// the preceding message. Only the last message is ever modified.
type Reconstructor struct {
	messages []ChatMessage
}

// NewReconstructor creates an empty Reconstructor
func NewReconstructor() *Reconstructor {
	return &Reconstructor{}
}

// Add folds one record into the conversation. Summary and other
// non-conversational records are ignored.
func (r *Reconstructor) Add(rec *RawRecord) {
	if rec == nil || !rec.IsConversational() {
		return
	}

	candidate := NewChatMessage(rec)

	switch {
	case r.continuesFragment(&candidate, rec.MessageID):
		last := &r.messages[len(r.messages)-1]
		last.Content = last.Content.Append(candidate.Content)
	case r.pairsToolResults(&candidate):
		r.absorbToolResults(&candidate)
	default:
		r.messages = append(r.messages, candidate)
	}
}

// Messages returns the reconstructed conversation in file order
func (r *Reconstructor) Messages() []ChatMessage {
	return r.messages
}

// Len returns the number of reconstructed messages
func (r *Reconstructor) Len() int {
	return len(r.messages)
}

func (r *Reconstructor) last() *ChatMessage {
	if len(r.messages) == 0 {
		return nil
	}
	return &r.messages[len(r.messages)-1]
}

// continuesFragment reports whether candidate is another streamed
// fragment of the previous assistant message
func (r *Reconstructor) continuesFragment(candidate *ChatMessage, providerID string) bool {
	prev := r.last()
	if prev == nil || providerID == "" {
		return false
	}
	if prev.Role != RoleAssistant || candidate.Role != RoleAssistant {
		return false
	}
	return strings.HasSuffix(prev.ID, providerID)
}

// pairsToolResults reports whether candidate is a user message made only
// of tool results answering the previous assistant message's tool calls
func (r *Reconstructor) pairsToolResults(candidate *ChatMessage) bool {
	if candidate.Role != RoleUser || !candidate.Content.IsBlocks() {
		return false
	}
	blocks := candidate.Content.BlockList()
	if len(blocks) == 0 {
		return false
	}
	for _, block := range blocks {
		if block.Kind != BlockKindToolResult {
			return false
		}
	}

	prev := r.last()
	return prev != nil && prev.Role == RoleAssistant && prev.HasToolCalls()
}

// absorbToolResults writes each tool result into the tool_use block of
// the previous message with the same call id. Results without a matching
// call are dropped.
func (r *Reconstructor) absorbToolResults(candidate *ChatMessage) {
	prev := r.last()
	prevBlocks := prev.Content.BlockList()

	for _, result := range candidate.Content.BlockList() {
		if result.ToolCallID == "" {
			LogDebug("Dropping tool result without call id in message %s", candidate.ID)
			continue
		}
		matched := false
		for i := range prevBlocks {
			block := &prevBlocks[i]
			if block.Kind == BlockKindToolUse && block.ToolCallID == result.ToolCallID {
				block.ResultText = result.ResultText
				block.StructuredResult = result.StructuredResult
				matched = true
				break
			}
		}
		if !matched {
			LogDebug("Dropping tool result %s: no matching tool call in message %s", result.ToolCallID, prev.ID)
		}
	}
}

// NewChatMessage converts one conversational record into a message. The
// id is suffixed with the provider message id so streamed fragments can
// be recognized, and a user record's toolUseResult payload is attached to
// its tool_result blocks.
func NewChatMessage(rec *RawRecord) ChatMessage {
	content := rec.Content
	if rec.Kind == RecordKindUser && rec.ToolResult != nil && content.IsBlocks() {
		blocks := make([]ContentBlock, len(content.BlockList()))
		copy(blocks, content.BlockList())
		for i := range blocks {
			if blocks[i].Kind == BlockKindToolResult {
				blocks[i].StructuredResult = rec.ToolResult
			}
		}
		content = Blocks(blocks...)
	}

	id := rec.UUID
	if rec.MessageID != "" {
		id = rec.UUID + "#" + rec.MessageID
	}

	return ChatMessage{
		ID:               id,
		ParentID:         rec.ParentID,
		Timestamp:        rec.Timestamp,
		Role:             Role(rec.Kind),
		Content:          content,
		WorkingDirectory: rec.WorkingDirectory,
		AgentVersion:     rec.Version,
		Model:            rec.Model,
	}
}

// ReconstructFile parses and folds a whole session file. Undecodable
// lines are skipped.
func ReconstructFile(path string) ([]ChatMessage, error) {
	r := NewReconstructor()
	err := ScanLines(path, func(lineNo int, line []byte) bool {
		rec, err := ParseRecord(line)
		if err != nil {
			LogDebug("%v", &ParseError{Source: "jsonl", Key: lineKey(path, lineNo), Err: err})
			return true
		}
		r.Add(rec)
		return true
	})
	if err != nil {
		return nil, err
	}
	return r.Messages(), nil
}
