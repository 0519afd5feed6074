package internal

// CreateTestSession creates a test transcript with sample data
func CreateTestSession(id string) *Session {
	return &Session{
		ID:      id,
		Project: "/home/dev/project",
		Source:  "claude-projects",
		Messages: []Message{
			{
				Actor:     "user",
				Content:   "Hello, how are you?",
				Timestamp: "2024-03-01T10:00:00Z",
			},
			{
				Actor:     "assistant",
				Content:   "I'm doing well, thank you!",
				Timestamp: "2024-03-01T10:00:05Z",
				Model:     "claude-sonnet",
			},
		},
		Metadata: Metadata{
			Title:        "Test Conversation",
			MessageCount: 2,
			CreatedAt:    "2024-03-01T10:00:00Z",
			UpdatedAt:    "2024-03-01T10:00:05Z",
		},
	}
}

// CreateTestSessionWithMessages creates a test transcript with custom messages
func CreateTestSessionWithMessages(id string, messages []Message) *Session {
	return &Session{
		ID:       id,
		Project:  "/home/dev/project",
		Source:   "claude-projects",
		Messages: messages,
		Metadata: Metadata{
			MessageCount: len(messages),
		},
	}
}

// CreateTestRecord creates a conversational RawRecord
func CreateTestRecord(kind RecordKind, uuid, messageID string, content MessageContent) *RawRecord {
	return &RawRecord{
		SessionID:        "session-1",
		WorkingDirectory: "/home/dev/project",
		Kind:             kind,
		UUID:             uuid,
		MessageID:        messageID,
		Version:          "1.0.0",
		Timestamp:        "2024-03-01T10:00:00Z",
		Content:          content,
	}
}
