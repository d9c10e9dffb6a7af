package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/examtrainer/backend/internal/worker"
)

// ExamInfo is one entry of the exam catalog file.
type ExamInfo struct {
	Name        string `json:"name"`
	File        string `json:"file"`
	Description string `json:"description,omitempty"`
}

// Catalog is the registry of available exams, read from a JSON config file
// of the shape {"exams": [{name, file, description}]}.
type Catalog struct {
	baseDir string
	exams   []ExamInfo
}

// LoadCatalog reads the catalog file. Relative question-file paths are
// resolved against baseDir. A missing or corrupt catalog yields an empty
// one; the condition is logged.
func LoadCatalog(path, baseDir string, logger *slog.Logger) *Catalog {
	cat := &Catalog{baseDir: baseDir}

	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("exam catalog unavailable", "file", path, "error", err)
		return cat
	}

	var doc struct {
		Exams []ExamInfo `json:"exams"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		logger.Error("exam catalog corrupt", "file", path, "error", err)
		return cat
	}

	cat.exams = doc.Exams
	return cat
}

// Exams returns all catalog entries.
func (c *Catalog) Exams() []ExamInfo { return c.exams }

// Names returns the exam names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.exams))
	for i, e := range c.exams {
		names[i] = e.Name
	}
	return names
}

// Has reports whether the exam is in the catalog.
func (c *Catalog) Has(examName string) bool {
	for _, e := range c.exams {
		if e.Name == examName {
			return true
		}
	}
	return false
}

// File returns the question-file path for the exam, or ErrNotFound.
func (c *Catalog) File(examName string) (string, error) {
	for _, e := range c.exams {
		if e.Name == examName {
			if filepath.IsAbs(e.File) {
				return e.File, nil
			}
			return filepath.Join(c.baseDir, e.File), nil
		}
	}
	return "", ErrNotFound
}

// BankRegistry owns the per-exam question stores, constructed lazily on
// first use. It replaces what used to be ambient package-level caches: the
// process creates one registry and hands it to the request handlers.
type BankRegistry struct {
	catalog *Catalog
	logger  *slog.Logger

	mu    sync.Mutex
	banks map[string]*QuestionStore
}

// NewBankRegistry creates an empty registry over the catalog.
func NewBankRegistry(catalog *Catalog, logger *slog.Logger) *BankRegistry {
	return &BankRegistry{
		catalog: catalog,
		logger:  logger,
		banks:   make(map[string]*QuestionStore),
	}
}

// Catalog returns the underlying exam catalog.
func (r *BankRegistry) Catalog() *Catalog { return r.catalog }

// Bank returns the question store for the exam, loading it on first use.
// ErrNotFound is returned for exams missing from the catalog.
func (r *BankRegistry) Bank(examName string) (*QuestionStore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if qs, ok := r.banks[examName]; ok {
		return qs, nil
	}

	file, err := r.catalog.File(examName)
	if err != nil {
		return nil, err
	}

	qs := NewQuestionStore(examName, file, r.logger)
	r.banks[examName] = qs
	return qs, nil
}

// Warm loads every cataloged exam through the worker pool so the first
// request after startup does not pay the parse cost. Load failures are
// already logged by the stores; Warm only reports how many banks loaded.
func (r *BankRegistry) Warm(workers int) int {
	names := r.catalog.Names()
	if len(names) == 0 {
		return 0
	}

	pool := worker.NewPool[int](workers, len(names))
	for _, name := range names {
		exam := name
		pool.Submit(exam, func() int {
			qs, err := r.Bank(exam)
			if err != nil {
				return 0
			}
			return len(qs.Questions())
		})
	}
	pool.Close()

	loaded := 0
	for result := range pool.Results() {
		r.logger.Info("bank warmed", "exam", result.JobID, "questions", result.Output)
		loaded++
	}
	return loaded
}
