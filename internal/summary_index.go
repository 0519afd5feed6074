package internal

import (
	"github.com/tidwall/gjson"
)

// SummaryIndex maps a leaf message uuid to the summary title written for
// the conversation ending at that message
type SummaryIndex map[string]string

// Lookup returns the summary for a leaf uuid
func (idx SummaryIndex) Lookup(leafID string) (string, bool) {
	title, ok := idx[leafID]
	return title, ok
}

// BuildSummaryIndex scans every session file of a project directory once
// and collects its summary records. Only the type, leafUuid and summary
// fields are decoded; other and malformed lines are ignored, as are files
// that cannot be read.
func (s *Storage) BuildSummaryIndex(projectDir string) SummaryIndex {
	index := make(SummaryIndex)

	files, err := s.SessionFiles(projectDir)
	if err != nil {
		LogDebug("Summary index unavailable: %v", err)
		return index
	}

	for _, path := range files {
		err := ScanLines(path, func(_ int, line []byte) bool {
			addSummary(index, line)
			return true
		})
		if err != nil {
			LogDebug("Summary index skipped file: %v", err)
		}
	}
	return index
}

func addSummary(index SummaryIndex, line []byte) {
	if !gjson.ValidBytes(line) {
		return
	}
	fields := gjson.GetManyBytes(line, "type", "leafUuid", "summary")
	if fields[0].Str != string(RecordKindSummary) {
		return
	}
	leaf, summary := fields[1], fields[2]
	if leaf.Type != gjson.String || summary.Type != gjson.String {
		return
	}
	index[leaf.Str] = summary.Str
}
