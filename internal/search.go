package internal

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"unicode"
)

const snippetContext = 30

var (
	summaryMarker   = []byte(`"type":"summary"`)
	sessionIDMarker = []byte(`"sessionId":"`)
)

// matchPriority orders search results; lower sorts first
var matchPriority = map[MatchKind]int{
	MatchKindContent:    0,
	MatchKindThinking:   1,
	MatchKindToolName:   2,
	MatchKindToolInput:  3,
	MatchKindToolResult: 4,
}

func priorityOf(kind MatchKind) int {
	if p, ok := matchPriority[kind]; ok {
		return p
	}
	return len(matchPriority)
}

// Search scans every session file for a case-insensitive query and
// returns one result per matching field. Lines are rejected with a
// lower-cased substring check before any decoding.
func (s *ChatService) Search(ctx context.Context, query string) ([]SearchResult, error) {
	results := []SearchResult{}
	if strings.TrimSpace(query) == "" {
		return results, nil
	}
	lowerQuery := strings.ToLower(query)

	err := s.storage.EachSessionFile(ctx, func(_, path string) (bool, error) {
		found, err := searchFile(path, query, lowerQuery)
		if err != nil {
			LogWarn("Skipping session file: %v", err)
			return false, nil
		}
		results = append(results, found...)
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return priorityOf(results[i].MatchKind) < priorityOf(results[j].MatchKind)
	})
	return results, nil
}

func searchFile(path, query, lowerQuery string) ([]SearchResult, error) {
	var results []SearchResult
	sessionID := ""

	err := ScanLines(path, func(lineNo int, line []byte) bool {
		if bytes.Contains(line, summaryMarker) {
			return true
		}
		if !strings.Contains(strings.ToLower(string(line)), lowerQuery) {
			if sessionID == "" {
				sessionID = extractSessionIDFast(line)
			}
			return true
		}

		rec, err := ParseRecord(line)
		if err != nil {
			LogDebug("%v", &ParseError{Source: "jsonl", Key: lineKey(path, lineNo), Err: err})
			return true
		}
		if sessionID == "" {
			sessionID = rec.SessionID
		}
		if rec.IsConversational() {
			results = append(results, matchRecord(rec, sessionID, query, lowerQuery)...)
		}
		return true
	})
	return results, err
}

// extractSessionIDFast pulls the session id out of a raw line without
// decoding it
func extractSessionIDFast(line []byte) string {
	start := bytes.Index(line, sessionIDMarker)
	if start < 0 {
		return ""
	}
	rest := line[start+len(sessionIDMarker):]
	end := bytes.IndexByte(rest, '"')
	if end < 0 {
		return ""
	}
	return string(rest[:end])
}

// matchRecord checks every searchable field of a record independently
func matchRecord(rec *RawRecord, sessionID, query, lowerQuery string) []SearchResult {
	var results []SearchResult
	add := func(kind MatchKind, field, snippet string) {
		if !strings.Contains(strings.ToLower(field), lowerQuery) {
			return
		}
		if snippet == "" {
			snippet = createSnippet(field, query)
		}
		results = append(results, SearchResult{
			SessionID: sessionID,
			MessageID: rec.UUID,
			Snippet:   snippet,
			MatchKind: kind,
		})
	}

	msg := NewChatMessage(rec)
	if !msg.Content.IsBlocks() {
		add(MatchKindContent, msg.Content.Text(), "")
		return results
	}

	// Fields are checked whatever the block type; server-side tool blocks
	// carry a name and input without being tool_use
	for _, block := range msg.Content.BlockList() {
		if block.Text != "" {
			add(MatchKindContent, block.Text, "")
		}
		if block.ThinkingText != "" {
			add(MatchKindThinking, block.ThinkingText, "")
		}
		if block.ToolName != "" {
			add(MatchKindToolName, block.ToolName, "Tool: "+block.ToolName)
		}
		if len(block.ToolInput) > 0 {
			add(MatchKindToolInput, string(block.ToolInput), "")
		}
		if block.ResultText != "" {
			add(MatchKindToolResult, block.ResultText, "")
		}
		if len(block.StructuredResult) > 0 {
			add(MatchKindToolStructuredResult, string(block.StructuredResult), "")
		}
	}
	return results
}

// createSnippet cuts about snippetContext characters of context on each
// side of the first case-insensitive occurrence of query. Offsets are in
// runes so multi-byte text is never split.
func createSnippet(text, query string) string {
	runes := []rune(text)
	pos := indexFold(runes, []rune(query))
	if pos < 0 {
		if len(runes) > 2*snippetContext {
			return string(runes[:2*snippetContext]) + "..."
		}
		return text
	}

	start := max(pos-snippetContext, 0)
	end := min(pos+len([]rune(query))+snippetContext, len(runes))

	var b strings.Builder
	if start > 0 {
		b.WriteString("...")
	}
	b.WriteString(string(runes[start:end]))
	if end < len(runes) {
		b.WriteString("...")
	}
	return b.String()
}

// indexFold returns the rune offset of the first case-insensitive
// occurrence of needle in haystack, or -1
func indexFold(haystack, needle []rune) int {
	if len(needle) == 0 {
		return 0
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		matched := true
		for j, r := range needle {
			if unicode.ToLower(haystack[i+j]) != unicode.ToLower(r) {
				matched = false
				break
			}
		}
		if matched {
			return i
		}
	}
	return -1
}
