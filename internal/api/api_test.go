package api_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/examtrainer/backend/internal/api"
	"github.com/examtrainer/backend/internal/auth"
	"github.com/examtrainer/backend/internal/domain/question"
	"github.com/examtrainer/backend/internal/store"
)

const (
	testSecret = "ABCDEFGHIJKLMNOP"
	testExam   = "PM Basics"
)

type testEnv struct {
	mux      *http.ServeMux
	secrets  *auth.Validator
	sessions *store.SessionStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// Secret registry + storage folder
	registryFile := filepath.Join(dir, "secrets_config.json")
	secretsDir := filepath.Join(dir, "secrets")
	regData, _ := json.Marshal(map[string][]string{"secrets": {testSecret}})
	if err := os.WriteFile(registryFile, regData, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(secretsDir, testSecret), 0o755); err != nil {
		t.Fatal(err)
	}

	// Exam catalog + question file
	sourcesDir := filepath.Join(dir, "sources")
	if err := os.MkdirAll(sourcesDir, 0o755); err != nil {
		t.Fatal(err)
	}
	questionFile := filepath.Join(sourcesDir, "pm_basics.json")
	s1 := 1
	questions := []question.Question{
		{
			ID: "q1", Text: "Which are project constraints?", Type: question.TypeMultiple,
			IsVerified: true, SectionNumber: &s1, ExamName: testExam,
			Answers: []question.Answer{
				{ID: "a1", Text: "Scope", IsCorrect: true},
				{ID: "a2", Text: "Budget", IsCorrect: true},
				{ID: "a3", Text: "Weather"},
			},
		},
		{ID: "q2", Text: "Unverified question", ExamName: testExam},
	}
	qData, _ := json.Marshal(questions)
	if err := os.WriteFile(questionFile, qData, 0o644); err != nil {
		t.Fatal(err)
	}
	catalogFile := filepath.Join(dir, "exam_config.json")
	catData, _ := json.Marshal(map[string]any{
		"exams": []map[string]string{{"name": testExam, "file": "sources/pm_basics.json"}},
	})
	if err := os.WriteFile(catalogFile, catData, 0o644); err != nil {
		t.Fatal(err)
	}

	sessions, err := store.NewSessionStore(filepath.Join(dir, "sessions.db"), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { sessions.Close() })

	catalog := store.LoadCatalog(catalogFile, dir, logger)
	banks := store.NewBankRegistry(catalog, logger)
	progressReg := store.NewProgressRegistry(secretsDir, logger)
	secrets := auth.NewValidator(registryFile, secretsDir, logger)

	h := api.NewHandler(banks, progressReg, sessions, secrets, auth.NewLoginLimiter(), testExam, logger)

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, h)

	return &testEnv{mux: mux, secrets: secrets, sessions: sessions}
}

func (e *testEnv) do(t *testing.T, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.RemoteAddr = "10.0.0.1:54321"
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/login", `{"secret":"`+testSecret+`"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == "trainer_session" {
			return c
		}
	}
	t.Fatal("no session cookie set on login")
	return nil
}

func TestLogin_ValidSecret(t *testing.T) {
	env := newTestEnv(t)

	cookie := env.login(t)
	if cookie.Value == "" {
		t.Fatal("empty session cookie")
	}

	rec := env.do(t, http.MethodGet, "/api/auth/status", "", cookie)
	var status api.AuthStatusResponse
	json.Unmarshal(rec.Body.Bytes(), &status)
	if !status.Authenticated {
		t.Error("expected authenticated status after login")
	}
}

func TestLogin_InvalidSecret(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/login", `{"secret":"WRONGWRONGWRONG1"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestLogin_LockoutAfterFiveFailures(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 5; i++ {
		rec := env.do(t, http.MethodPost, "/api/auth/login", `{"secret":"WRONGWRONGWRONG1"}`, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, rec.Code)
		}
	}

	// The 6th attempt is rejected even with the valid secret.
	rec := env.do(t, http.MethodPost, "/api/auth/login", `{"secret":"`+testSecret+`"}`, nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after lockout, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on lockout")
	}
}

func TestQuestions_RequireAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/questions", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without session, got %d", rec.Code)
	}
}

func TestListQuestions_VerifiedOnly(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.do(t, http.MethodGet, "/api/questions", "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp api.ListQuestionsResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 1 || resp.Questions[0].ID != "q1" {
		t.Errorf("expected only the verified question, got %+v", resp)
	}
}

func TestCheckAnswer_SetEqualityAndStreakReset(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	// Exact set {a1,a2} is correct.
	rec := env.do(t, http.MethodPost, "/api/question/q1/check",
		`{"selected_answers":["a2","a1"]}`, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp api.CheckAnswerResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if !resp.IsCorrect {
		t.Error("expected exact selection to be correct")
	}
	if resp.Progress.CorrectStreak != 1 {
		t.Errorf("expected streak 1, got %d", resp.Progress.CorrectStreak)
	}

	// Partial selection is wrong and resets the streak.
	rec = env.do(t, http.MethodPost, "/api/question/q1/check",
		`{"selected_answers":["a1"]}`, cookie)
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.IsCorrect {
		t.Error("expected partial selection to be wrong")
	}
	if resp.Progress.CorrectStreak != 0 {
		t.Errorf("expected streak reset, got %d", resp.Progress.CorrectStreak)
	}
	if len(resp.CorrectAnswers) != 2 {
		t.Errorf("expected correct answer IDs revealed, got %v", resp.CorrectAnswers)
	}
}

func TestCheckAnswer_MasteryAfterThree(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	var resp api.CheckAnswerResponse
	for i := 0; i < 3; i++ {
		rec := env.do(t, http.MethodPost, "/api/question/q1/check",
			`{"selected_answers":["a1","a2"]}`, cookie)
		json.Unmarshal(rec.Body.Bytes(), &resp)
	}
	if !resp.Mastered {
		t.Error("expected mastered after 3 correct checks")
	}

	// Statistics reflect it.
	rec := env.do(t, http.MethodGet, "/api/statistics", "", cookie)
	var stats api.StatisticsResponse
	json.Unmarshal(rec.Body.Bytes(), &stats)
	if stats.Overall.Mastered != 1 || stats.Overall.MasteredPercent != 100 {
		t.Errorf("unexpected overall stats: %+v", stats.Overall)
	}
	if stats.Overall.Accuracy != 100 {
		t.Errorf("expected accuracy 100, got %v", stats.Overall.Accuracy)
	}
}

func TestGetQuestion_HidesAnswersByDefault(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.do(t, http.MethodGet, "/api/question/q1", "", cookie)
	var resp api.GetQuestionResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	for _, a := range resp.Question.Answers {
		if a.IsCorrect || a.IsSuggested {
			t.Fatalf("answer flags must be hidden by default: %+v", a)
		}
	}

	rec = env.do(t, http.MethodGet, "/api/question/q1?show_answers=true", "", cookie)
	json.Unmarshal(rec.Body.Bytes(), &resp)
	found := false
	for _, a := range resp.Question.Answers {
		if a.IsCorrect {
			found = true
		}
	}
	if !found {
		t.Error("expected correct flags with show_answers=true")
	}
}

func TestGetQuestion_UnverifiedRejected(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.do(t, http.MethodGet, "/api/question/q2", "", cookie)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unverified question, got %d", rec.Code)
	}
}

func TestQuizRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/quiz/start",
		`{"question_ids":["q1","q2","missing"]}`, cookie)
	var start api.StartQuizResponse
	json.Unmarshal(rec.Body.Bytes(), &start)
	if start.Total != 1 {
		t.Fatalf("expected 1 quiz question (verified only), got %d", start.Total)
	}

	rec = env.do(t, http.MethodPost, "/api/quiz/results",
		`{"answers":{"q1":{"selected":["a1","a2"]}}}`, cookie)
	var results api.QuizResultsResponse
	json.Unmarshal(rec.Body.Bytes(), &results)
	if results.Summary.TotalCorrect != 1 || results.Summary.Accuracy != 100 {
		t.Errorf("unexpected summary: %+v", results.Summary)
	}
}

func TestSetMastered_Toggle(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/question/q1/mastered", `{"mastered":true}`, cookie)
	var resp api.SetMasteredResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if !resp.Progress.Mastered {
		t.Error("expected mastered set")
	}

	// Mastered questions disappear from the default listing.
	listRec := env.do(t, http.MethodGet, "/api/questions", "", cookie)
	var list api.ListQuestionsResponse
	json.Unmarshal(listRec.Body.Bytes(), &list)
	if list.Total != 0 {
		t.Errorf("expected mastered question hidden by default, got %d", list.Total)
	}

	// But show up with hide_mastered=false and with status=mastered.
	listRec = env.do(t, http.MethodGet, "/api/questions?hide_mastered=false", "", cookie)
	json.Unmarshal(listRec.Body.Bytes(), &list)
	if list.Total != 1 {
		t.Errorf("expected mastered question with hide_mastered=false, got %d", list.Total)
	}
	listRec = env.do(t, http.MethodGet, "/api/questions?status=mastered", "", cookie)
	json.Unmarshal(listRec.Body.Bytes(), &list)
	if list.Total != 1 {
		t.Errorf("expected mastered question with status=mastered, got %d", list.Total)
	}
}

func TestLogout_EndsSession(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	env.do(t, http.MethodPost, "/api/auth/logout", "", cookie)

	rec := env.do(t, http.MethodGet, "/api/questions", "", cookie)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", rec.Code)
	}
}
