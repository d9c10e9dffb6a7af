package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/examtrainer/backend/internal/domain/question"
)

// QuestionStore holds the questions of one exam, loaded from a JSON source
// file. The source is either a flat array of questions or a mapping of
// course name → {course_name, questions} covering several courses.
type QuestionStore struct {
	examName string
	dataFile string
	logger   *slog.Logger

	questions []question.Question
}

// courseEntry is the nested shape of multi-course source files.
type courseEntry struct {
	CourseName string              `json:"course_name"`
	Questions  []question.Question `json:"questions"`
}

// NewQuestionStore loads the questions of examName from dataFile. A missing
// or corrupt file yields an empty store; the condition is logged and the
// store stays usable.
func NewQuestionStore(examName, dataFile string, logger *slog.Logger) *QuestionStore {
	qs := &QuestionStore{
		examName: examName,
		dataFile: dataFile,
		logger:   logger,
	}
	qs.Load()
	return qs
}

// ExamName returns the exam this store was opened for.
func (qs *QuestionStore) ExamName() string { return qs.examName }

// Load reads the source file, keeping only questions of this store's exam.
// Questions without an exam_name inherit it.
func (qs *QuestionStore) Load() {
	qs.questions = nil

	raw, err := os.ReadFile(qs.dataFile)
	if err != nil {
		qs.logger.Warn("question file unavailable, starting empty",
			"exam", qs.examName, "file", qs.dataFile, "error", err)
		return
	}

	// Flat array shape first, course mapping as the fallback.
	var flat []question.Question
	if err := json.Unmarshal(raw, &flat); err == nil {
		for _, q := range flat {
			if q.ExamName == "" {
				q.ExamName = qs.examName
			}
			if q.ExamName == qs.examName {
				qs.questions = append(qs.questions, q)
			}
		}
		qs.logger.Info("questions loaded", "exam", qs.examName, "count", len(qs.questions))
		return
	}

	var courses map[string]courseEntry
	if err := json.Unmarshal(raw, &courses); err != nil {
		qs.logger.Error("question file corrupt, starting empty",
			"exam", qs.examName, "file", qs.dataFile, "error", err)
		return
	}

	for key, course := range courses {
		name := course.CourseName
		if name == "" {
			name = key
		}
		if name != qs.examName && key != qs.examName {
			continue
		}
		for _, q := range course.Questions {
			if q.ExamName == "" {
				q.ExamName = qs.examName
			}
			qs.questions = append(qs.questions, q)
		}
		break
	}
	qs.logger.Info("questions loaded", "exam", qs.examName, "count", len(qs.questions))
}

// Save writes this exam's questions back to the source file as a flat
// array. The previous file is copied to a .backup first, the new content
// goes through a temp file and an atomic rename, and on failure the backup
// is restored before the error is returned.
func (qs *QuestionStore) Save() error {
	exam := make([]question.Question, 0, len(qs.questions))
	for _, q := range qs.questions {
		if q.ExamName == qs.examName {
			exam = append(exam, q)
		}
	}

	backup := qs.dataFile + ".backup"
	hasBackup := false
	if _, err := os.Stat(qs.dataFile); err == nil {
		if err := copyFile(qs.dataFile, backup); err != nil {
			return fmt.Errorf("backing up %s: %w", qs.dataFile, err)
		}
		hasBackup = true
	}

	data, err := json.MarshalIndent(exam, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding questions: %w", err)
	}

	if err := writeFileAtomic(qs.dataFile, data); err != nil {
		qs.logger.Error("saving questions failed", "exam", qs.examName, "error", err)
		if hasBackup {
			if rbErr := copyFile(backup, qs.dataFile); rbErr != nil {
				qs.logger.Error("restoring question backup failed", "error", rbErr)
			}
		}
		return fmt.Errorf("saving questions for %q: %w", qs.examName, err)
	}

	qs.logger.Info("questions saved", "exam", qs.examName, "count", len(exam))
	return nil
}

// Questions returns all questions of the exam.
func (qs *QuestionStore) Questions() []question.Question {
	return qs.questions
}

// Verified returns the questions exposed through the trainer API.
func (qs *QuestionStore) Verified() []question.Question {
	var out []question.Question
	for _, q := range qs.questions {
		if q.IsVerified {
			out = append(out, q)
		}
	}
	return out
}

// Get returns the question with the given ID.
func (qs *QuestionStore) Get(id string) (*question.Question, error) {
	for i := range qs.questions {
		if qs.questions[i].ID == id {
			return &qs.questions[i], nil
		}
	}
	return nil, ErrNotFound
}

// FilterByStatus filters by editing status. An unknown status returns all
// questions.
func (qs *QuestionStore) FilterByStatus(status question.Status) []question.Question {
	switch status {
	case question.StatusPending, question.StatusSuggested, question.StatusVerified:
	default:
		return qs.questions
	}

	var out []question.Question
	for _, q := range qs.questions {
		if q.Status() == status {
			out = append(out, q)
		}
	}
	return out
}

// FilterBySection returns the questions of one section.
func (qs *QuestionStore) FilterBySection(sectionNumber int) []question.Question {
	var out []question.Question
	for _, q := range qs.questions {
		if q.SectionNumber != nil && *q.SectionNumber == sectionNumber {
			out = append(out, q)
		}
	}
	return out
}

// Search returns questions matching the query case-insensitively in the
// question text, any answer text, or the note.
func (qs *QuestionStore) Search(query string) []question.Question {
	query = strings.TrimSpace(query)
	if query == "" {
		return qs.questions
	}

	var out []question.Question
	for _, q := range qs.questions {
		if q.Matches(query) {
			out = append(out, q)
		}
	}
	return out
}

// SectionInfo describes one section of an exam for listing purposes.
type SectionInfo struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

// Sections lists the sections of the verified questions, sorted by number.
// The name comes from the questions themselves; "Section N" is the
// fallback when none of a section's questions carries one.
func (qs *QuestionStore) Sections() []SectionInfo {
	byNumber := make(map[int]*SectionInfo)
	for _, q := range qs.questions {
		if !q.IsVerified || q.SectionNumber == nil {
			continue
		}
		num := *q.SectionNumber
		info, ok := byNumber[num]
		if !ok {
			info = &SectionInfo{Number: num, Name: fmt.Sprintf("Section %d", num)}
			byNumber[num] = info
		}
		if q.SectionName != nil && *q.SectionName != "" && info.Name == fmt.Sprintf("Section %d", num) {
			info.Name = *q.SectionName
		}
		info.Count++
	}

	out := make([]SectionInfo, 0, len(byNumber))
	for _, info := range byNumber {
		out = append(out, *info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Counts holds the editor-style status breakdown of a bank.
type Counts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Suggested int `json:"suggested"`
	Verified  int `json:"verified"`
}

// StatusCounts returns the status breakdown of all questions.
func (qs *QuestionStore) StatusCounts() Counts {
	c := Counts{Total: len(qs.questions)}
	for _, q := range qs.questions {
		switch q.Status() {
		case question.StatusPending:
			c.Pending++
		case question.StatusSuggested:
			c.Suggested++
		case question.StatusVerified:
			c.Verified++
		}
	}
	return c
}
