package store_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/examtrainer/backend/internal/domain/progress"
	"github.com/examtrainer/backend/internal/store"
)

const exam = "PM Basics"

func newProgressStore(t *testing.T) (*store.ProgressStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secrets", "ABCDEFGHIJKLMNOP", "trainer_progress.json")
	return store.NewProgressStore(path, testLogger()), path
}

func TestRecordAttempt_MasteryScenario(t *testing.T) {
	ps, _ := newProgressStore(t)

	for i := 0; i < 3; i++ {
		rec, err := ps.RecordAttempt(exam, "q1", progress.OutcomeCorrect)
		if err != nil {
			t.Fatalf("attempt %d failed: %v", i, err)
		}
		if i < 2 && rec.Mastered {
			t.Errorf("mastered too early at attempt %d", i+1)
		}
	}

	rec := ps.Record(exam, "q1")
	if !rec.Mastered || rec.CorrectStreak != 3 {
		t.Errorf("expected mastered with streak 3, got %+v", rec)
	}

	// Wrong answer resets the streak but keeps the flag.
	rec, err := ps.RecordAttempt(exam, "q1", progress.OutcomeIncorrect)
	if err != nil {
		t.Fatal(err)
	}
	if !rec.Mastered || rec.CorrectStreak != 0 {
		t.Errorf("expected sticky mastered with streak 0, got %+v", rec)
	}
}

func TestRecord_DefaultForUnknownQuestion(t *testing.T) {
	ps, _ := newProgressStore(t)

	rec := ps.Record(exam, "never-seen")
	if rec.Attempts != 0 || rec.Mastered || rec.LastAttempt != nil {
		t.Errorf("expected zero-value record, got %+v", rec)
	}
}

func TestSetMastered_Persists(t *testing.T) {
	ps, path := newProgressStore(t)

	if _, err := ps.SetMastered(exam, "q1", true); err != nil {
		t.Fatal(err)
	}

	// A fresh store over the same file must see the flag.
	reopened := store.NewProgressStore(path, testLogger())
	if !reopened.Record(exam, "q1").Mastered {
		t.Error("expected mastered flag to survive reopen")
	}

	if _, err := reopened.SetMastered(exam, "q1", false); err != nil {
		t.Fatal(err)
	}
	rec := ps.Record(exam, "q1")
	if rec.Mastered || rec.CorrectStreak != 0 {
		t.Errorf("expected cleared flag visible through the first store, got %+v", rec)
	}
}

func TestRecordAttempt_MergesExternalEdits(t *testing.T) {
	// Simulates another device writing the file between two requests: the
	// store must pick the edit up because it re-reads before every mutation.
	ps, path := newProgressStore(t)

	if _, err := ps.RecordAttempt(exam, "q1", progress.OutcomeCorrect); err != nil {
		t.Fatal(err)
	}

	external := map[string]map[string]progress.Record{
		exam: {
			"q1": {Attempts: 5, CorrectStreak: 2, TotalCorrect: 4},
			"q2": {Attempts: 1, TotalCorrect: 1, CorrectStreak: 1},
		},
	}
	data, _ := json.Marshal(external)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	rec, err := ps.RecordAttempt(exam, "q1", progress.OutcomeCorrect)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Attempts != 6 || rec.CorrectStreak != 3 || !rec.Mastered {
		t.Errorf("expected external state merged before mutation, got %+v", rec)
	}

	// The other device's record for q2 must survive the save.
	if got := ps.Record(exam, "q2").Attempts; got != 1 {
		t.Errorf("expected q2 record preserved, got attempts=%d", got)
	}
}

func TestProgressStore_CorruptFileStartsEmpty(t *testing.T) {
	ps, path := newProgressStore(t)

	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := ps.Record(exam, "q1")
	if rec.Attempts != 0 {
		t.Errorf("expected empty state for corrupt file, got %+v", rec)
	}

	// Mutations must work again and produce a valid document.
	if _, err := ps.RecordAttempt(exam, "q1", progress.OutcomeCorrect); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]map[string]progress.Record
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("saved document is not valid JSON: %v", err)
	}
}

func TestProgressStore_NoTempFileLeftBehind(t *testing.T) {
	ps, path := newProgressStore(t)

	if _, err := ps.RecordAttempt(exam, "q1", progress.OutcomeCorrect); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file must not survive a successful save")
	}
}

func TestExamStats_ThroughStore(t *testing.T) {
	ps, _ := newProgressStore(t)

	for i := 0; i < 3; i++ {
		ps.RecordAttempt(exam, "q1", progress.OutcomeCorrect)
	}
	ps.RecordAttempt(exam, "q2", progress.OutcomeIncorrect)

	stats := ps.ExamStats(exam, []string{"q1", "q2", "q3", "q4"})

	if stats.Mastered != 1 || stats.Attempted != 2 || stats.NotAttempted != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.MasteredPercent != 25 {
		t.Errorf("expected mastered_percent 25, got %v", stats.MasteredPercent)
	}
	// 3 correct out of 4 attempts
	if stats.Accuracy != 75 {
		t.Errorf("expected accuracy 75, got %v", stats.Accuracy)
	}
}

func TestProgressRegistry_LazyPerSecret(t *testing.T) {
	dir := t.TempDir()
	reg := store.NewProgressRegistry(dir, testLogger())

	a := reg.Store("ABCDEFGHIJKLMNOP")
	b := reg.Store("QRSTUVWXYZ123456")

	if a == b {
		t.Fatal("different secrets must get different stores")
	}
	if again := reg.Store("ABCDEFGHIJKLMNOP"); again != a {
		t.Error("same secret must get the same store instance")
	}

	a.RecordAttempt(exam, "q1", progress.OutcomeCorrect)
	if b.Record(exam, "q1").Attempts != 0 {
		t.Error("progress must not leak between secrets")
	}
}
