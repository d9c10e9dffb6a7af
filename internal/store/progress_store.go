package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/examtrainer/backend/internal/domain/progress"
	"github.com/examtrainer/backend/internal/domain/question"
)

// ProgressStore persists one user's progress as a single JSON document of
// the shape {exam_name: {question_id: record}}.
//
// Every operation re-reads the file first so edits made from another device
// since the last request are picked up. The conflict policy is
// last-write-wins: two near-simultaneous writers race and the later save
// replaces the earlier one wholesale. That is accepted for this read-heavy
// personal tool; a mutex keeps the read-modify-write sequence atomic within
// the process.
type ProgressStore struct {
	path   string
	logger *slog.Logger

	mu   sync.Mutex
	data map[string]map[string]progress.Record
}

// NewProgressStore creates a store over the given file, creating the parent
// directory when needed.
func NewProgressStore(path string, logger *slog.Logger) *ProgressStore {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("creating progress directory failed", "dir", dir, "error", err)
		}
	}
	return &ProgressStore{
		path:   path,
		logger: logger,
		data:   make(map[string]map[string]progress.Record),
	}
}

// load re-reads the document from disk. Missing or corrupt files reset the
// in-memory state to empty; the condition is logged and operation continues.
func (ps *ProgressStore) load() {
	ps.data = make(map[string]map[string]progress.Record)

	raw, err := os.ReadFile(ps.path)
	if err != nil {
		if !os.IsNotExist(err) {
			ps.logger.Error("reading progress failed, starting empty", "file", ps.path, "error", err)
		}
		return
	}

	if err := json.Unmarshal(raw, &ps.data); err != nil {
		ps.logger.Error("progress file corrupt, starting empty", "file", ps.path, "error", err)
		ps.data = make(map[string]map[string]progress.Record)
	}
}

// save writes the document atomically. On failure the previous content is
// restored from the backup taken just before the write.
func (ps *ProgressStore) save() error {
	data, err := json.MarshalIndent(ps.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding progress: %w", err)
	}

	backup := ps.path + ".backup"
	hasBackup := false
	if _, err := os.Stat(ps.path); err == nil {
		if err := copyFile(ps.path, backup); err != nil {
			ps.logger.Warn("progress backup failed", "error", err)
		} else {
			hasBackup = true
		}
	}

	if err := writeFileAtomic(ps.path, data); err != nil {
		ps.logger.Error("saving progress failed", "file", ps.path, "error", err)
		if hasBackup {
			if rbErr := copyFile(backup, ps.path); rbErr != nil {
				ps.logger.Error("restoring progress backup failed", "error", rbErr)
			}
		}
		return fmt.Errorf("saving progress: %w", err)
	}
	return nil
}

// record returns a copy of the record, or a zero default. Callers must hold
// the mutex and have loaded first.
func (ps *ProgressStore) record(exam, questionID string) progress.Record {
	if exam, ok := ps.data[exam]; ok {
		if rec, ok := exam[questionID]; ok {
			return rec
		}
	}
	return progress.Record{}
}

func (ps *ProgressStore) put(exam, questionID string, rec progress.Record) {
	if _, ok := ps.data[exam]; !ok {
		ps.data[exam] = make(map[string]progress.Record)
	}
	ps.data[exam][questionID] = rec
}

// RecordAttempt applies one answer outcome to the question's record and
// persists the store. The updated record is returned.
func (ps *ProgressStore) RecordAttempt(exam, questionID string, outcome progress.Outcome) (progress.Record, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.load()
	rec := ps.record(exam, questionID)
	rec.Apply(outcome, time.Now())
	ps.put(exam, questionID, rec)

	if err := ps.save(); err != nil {
		return rec, err
	}
	return rec, nil
}

// SetMastered sets or clears the mastered flag and persists the store.
func (ps *ProgressStore) SetMastered(exam, questionID string, mastered bool) (progress.Record, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.load()
	rec := ps.record(exam, questionID)
	rec.SetMastered(mastered)
	ps.put(exam, questionID, rec)

	if err := ps.save(); err != nil {
		return rec, err
	}
	return rec, nil
}

// Record returns the question's record, or a zero default when the question
// was never touched.
func (ps *ProgressStore) Record(exam, questionID string) progress.Record {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.load()
	return ps.record(exam, questionID)
}

// ExamRecords returns all records of the exam.
func (ps *ProgressStore) ExamRecords(exam string) map[string]progress.Record {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.load()
	out := make(map[string]progress.Record, len(ps.data[exam]))
	for id, rec := range ps.data[exam] {
		out[id] = rec
	}
	return out
}

// ExamStats aggregates progress over the given verified question IDs.
func (ps *ProgressStore) ExamStats(exam string, verifiedIDs []string) progress.ExamStats {
	return progress.AggregateExam(ps.ExamRecords(exam), verifiedIDs)
}

// SectionStats aggregates progress per section over the given questions.
func (ps *ProgressStore) SectionStats(exam string, questions []question.Question) []progress.SectionStats {
	return progress.AggregateBySection(ps.ExamRecords(exam), questions)
}

// ProgressRegistry owns the per-secret progress stores, constructed lazily.
// Like BankRegistry it is created once by the process and passed to the
// handlers instead of living as a package global.
type ProgressRegistry struct {
	secretsDir string
	logger     *slog.Logger

	mu     sync.Mutex
	stores map[string]*ProgressStore
}

// progressFileName is the progress document inside each secret's folder.
const progressFileName = "trainer_progress.json"

// NewProgressRegistry creates an empty registry rooted at secretsDir.
func NewProgressRegistry(secretsDir string, logger *slog.Logger) *ProgressRegistry {
	return &ProgressRegistry{
		secretsDir: secretsDir,
		logger:     logger,
		stores:     make(map[string]*ProgressStore),
	}
}

// Store returns the progress store owned by the secret.
func (r *ProgressRegistry) Store(secret string) *ProgressStore {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ps, ok := r.stores[secret]; ok {
		return ps
	}

	path := filepath.Join(r.secretsDir, secret, progressFileName)
	ps := NewProgressStore(path, r.logger)
	r.stores[secret] = ps
	return ps
}
