package internal

import (
	"errors"
)

// Session is a reconstructed conversation flattened for export
type Session struct {
	ID       string    `json:"id" yaml:"id"`
	Project  string    `json:"project,omitempty" yaml:"project,omitempty"`
	Source   string    `json:"source" yaml:"source"` // "claude-projects"
	Messages []Message `json:"messages" yaml:"messages"`
	Metadata Metadata  `json:"metadata" yaml:"metadata"`
}

// Message is one flattened transcript entry
type Message struct {
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Actor     string `json:"actor" yaml:"actor"` // "user", "assistant", "tool"
	Content   string `json:"content" yaml:"content"`
	Model     string `json:"model,omitempty" yaml:"model,omitempty"`
}

// Metadata contains additional session information
type Metadata struct {
	Title        string `json:"title,omitempty" yaml:"title,omitempty"`
	CreatedAt    string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	MessageCount int    `json:"message_count" yaml:"message_count"`
	FilePath     string `json:"file_path,omitempty" yaml:"file_path,omitempty"`
}

// errNoMessages marks a session file without user or assistant records
var errNoMessages = errors.New("no valid messages found in file")

// sessionScan accumulates what one pass over a session file yields
type sessionScan struct {
	sessionID    string
	projectPath  string
	messageCount int
	firstSeen    string
	lastUpdated  string
	lastUUID     string
	malformed    int
	recon        *Reconstructor
}

func newSessionScan() *sessionScan {
	return &sessionScan{recon: NewReconstructor()}
}

func (s *sessionScan) add(rec *RawRecord) {
	if rec.Kind == RecordKindSummary {
		return
	}
	if s.sessionID == "" {
		s.sessionID = rec.SessionID
		s.projectPath = rec.WorkingDirectory
	}
	if !rec.IsConversational() {
		return
	}
	s.messageCount++
	if s.firstSeen == "" {
		s.firstSeen = rec.Timestamp
	}
	s.lastUpdated = rec.Timestamp
	s.lastUUID = rec.UUID
	s.recon.Add(rec)
}

// scanSessionFile reads a session file once, feeding the reconstructor
// and collecting the raw-record statistics used for listing
func scanSessionFile(path string) (*sessionScan, error) {
	scan := newSessionScan()
	err := ScanLines(path, func(lineNo int, line []byte) bool {
		rec, err := ParseRecord(line)
		if err != nil {
			scan.malformed++
			LogDebug("%v", &ParseError{Source: "jsonl", Key: lineKey(path, lineNo), Err: err})
			return true
		}
		scan.add(rec)
		return true
	})
	if err != nil {
		return nil, err
	}
	return scan, nil
}

// session builds the listing metadata. The title is the summary recorded
// for the last message when there is one, otherwise it is derived from
// the first user message.
func (s *sessionScan) session(summaries SummaryIndex) (*ChatSession, error) {
	if s.messageCount == 0 {
		return nil, errNoMessages
	}

	session := &ChatSession{
		ID:           s.sessionID,
		ProjectPath:  s.projectPath,
		MessageCount: s.messageCount,
		LastUpdated:  s.lastUpdated,
		CreatedAt:    s.firstSeen,
	}

	first := firstUserMessage(s.recon.Messages())
	if first != nil {
		session.CreatedAt = first.Timestamp
	}

	if title, ok := summaries.Lookup(s.lastUUID); ok {
		session.Title = title
	} else if first != nil {
		session.Title = GenerateTitle(first.ExtractText())
	} else {
		session.Title = UntitledSessionTitle
	}
	return session, nil
}

func firstUserMessage(messages []ChatMessage) *ChatMessage {
	for i := range messages {
		if messages[i].Role == RoleUser {
			return &messages[i]
		}
	}
	return nil
}
