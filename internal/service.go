package internal

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"sort"

	"github.com/tidwall/gjson"
)

// ChatService answers queries over the session logs under one projects
// directory. It holds no state between calls; every call opens its own
// files and builds its own summary index.
type ChatService struct {
	storage *Storage
}

// NewChatService creates a ChatService for the configured projects directory
func NewChatService(cfg Config) *ChatService {
	return &ChatService{storage: NewStorage(cfg.ProjectsDir, cfg.SessionPattern)}
}

// ListProjects returns every project with at least one session. Sessions
// are ordered by last update, newest first, and projects by their newest
// session.
func (s *ChatService) ListProjects(ctx context.Context) ([]ProjectFolder, error) {
	projectDirs, err := s.storage.ProjectDirs()
	if err != nil {
		return nil, err
	}

	projects := make([]ProjectFolder, 0, len(projectDirs))
	for _, dir := range projectDirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sessions, err := s.projectSessions(ctx, dir)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			LogWarn("Skipping project directory: %v", err)
			continue
		}
		if len(sessions) == 0 {
			continue
		}
		projects = append(projects, ProjectFolder{
			Name:        sessions[0].ProjectPath,
			StoragePath: dir,
			Sessions:    sessions,
		})
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].LatestUpdate() > projects[j].LatestUpdate()
	})
	return projects, nil
}

func (s *ChatService) projectSessions(ctx context.Context, dir string) ([]ChatSession, error) {
	files, err := s.storage.SessionFiles(dir)
	if err != nil {
		return nil, err
	}

	summaries := s.storage.BuildSummaryIndex(dir)
	sessions := make([]ChatSession, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		scan, err := scanSessionFile(path)
		if err != nil {
			LogWarn("Skipping session file: %v", err)
			continue
		}
		session, err := scan.session(summaries)
		if err != nil {
			LogDebug("Skipping %s: %v", path, err)
			continue
		}
		sessions = append(sessions, *session)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].LastUpdated > sessions[j].LastUpdated
	})
	return sessions, nil
}

// ListMessages returns the reconstructed conversation of a session
func (s *ChatService) ListMessages(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	path, err := s.ResolveSessionFilePath(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return ReconstructFile(path)
}

// GetSession returns the listing metadata and the reconstructed
// conversation of a session in one pass over its file
func (s *ChatService) GetSession(ctx context.Context, sessionID string) (*ChatSession, []ChatMessage, error) {
	path, err := s.ResolveSessionFilePath(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	scan, err := scanSessionFile(path)
	if err != nil {
		return nil, nil, err
	}
	session, err := scan.session(s.storage.BuildSummaryIndex(filepath.Dir(path)))
	if errors.Is(err, errNoMessages) {
		return nil, nil, &NotFoundError{SessionID: sessionID}
	}
	if err != nil {
		return nil, nil, err
	}
	return session, scan.recon.Messages(), nil
}

// ResolveSessionFilePath finds the file holding a session by scanning for
// a non-summary line that carries its session id
func (s *ChatService) ResolveSessionFilePath(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", &NotFoundError{SessionID: sessionID}
	}

	needle := []byte(sessionID)
	found := ""
	err := s.storage.EachSessionFile(ctx, func(_, path string) (bool, error) {
		err := ScanLines(path, func(_ int, line []byte) bool {
			if !bytes.Contains(line, needle) {
				return true
			}
			fields := gjson.GetManyBytes(line, "type", "sessionId")
			if fields[0].Str == string(RecordKindSummary) {
				return true
			}
			if fields[1].Str == sessionID {
				found = path
				return false
			}
			return true
		})
		if err != nil {
			LogWarn("Skipping session file: %v", err)
		}
		return found != "", nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", &NotFoundError{SessionID: sessionID}
	}
	return found, nil
}

// Transcripts reconstructs and flattens every session, optionally limited
// to one project given by its working directory or storage directory name.
// Each file is read once.
func (s *ChatService) Transcripts(ctx context.Context, normalizer *Normalizer, project string) ([]*Session, error) {
	projectDirs, err := s.storage.ProjectDirs()
	if err != nil {
		return nil, err
	}

	var transcripts []*Session
	for _, dir := range projectDirs {
		files, err := s.storage.SessionFiles(dir)
		if err != nil {
			LogWarn("Skipping project directory: %v", err)
			continue
		}
		summaries := s.storage.BuildSummaryIndex(dir)
		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			scan, err := scanSessionFile(path)
			if err != nil {
				LogWarn("Skipping session file: %v", err)
				continue
			}
			meta, err := scan.session(summaries)
			if err != nil {
				continue
			}
			if project != "" && meta.ProjectPath != project && filepath.Base(dir) != project {
				continue
			}
			transcript, err := normalizer.NormalizeSession(meta, scan.recon.Messages())
			if err != nil {
				LogWarn("Failed to normalize session %s: %v", meta.ID, err)
				continue
			}
			transcript.Metadata.FilePath = path
			transcripts = append(transcripts, transcript)
		}
	}
	return transcripts, nil
}

// HealthReport summarizes the state of the projects directory
type HealthReport struct {
	ProjectsDir     string `json:"projects_dir"`
	Projects        int    `json:"projects"`
	SessionFiles    int    `json:"session_files"`
	Sessions        int    `json:"sessions"`
	Records         int    `json:"records"` // user and assistant records
	MalformedLines  int    `json:"malformed_lines"`
	UnreadableDirs  int    `json:"unreadable_dirs"`
	UnreadableFiles int    `json:"unreadable_files"`
}

// Health reads every session file and counts what it finds. Only an
// unreadable projects directory is an error.
func (s *ChatService) Health(ctx context.Context) (*HealthReport, error) {
	report := &HealthReport{ProjectsDir: s.storage.Root()}

	projectDirs, err := s.storage.ProjectDirs()
	if err != nil {
		return nil, err
	}
	report.Projects = len(projectDirs)

	for _, dir := range projectDirs {
		files, err := s.storage.SessionFiles(dir)
		if err != nil {
			report.UnreadableDirs++
			continue
		}
		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			report.SessionFiles++
			scan, err := scanSessionFile(path)
			if err != nil {
				report.UnreadableFiles++
				continue
			}
			report.Records += scan.messageCount
			report.MalformedLines += scan.malformed
			if scan.messageCount > 0 {
				report.Sessions++
			}
		}
	}
	return report, nil
}
