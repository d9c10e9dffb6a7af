package api

import (
	"errors"
	"math"
	"net/http"

	"github.com/examtrainer/backend/internal/domain/progress"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartQuizRequest struct {
	QuestionIDs []string `json:"question_ids"`
}

func (r *StartQuizRequest) Validate() error {
	if len(r.QuestionIDs) == 0 {
		return errors.New("question_ids is required")
	}
	return nil
}

type StartQuizResponse struct {
	Success   bool           `json:"success"`
	Questions []QuestionView `json:"questions"`
	Total     int            `json:"total"`
}

// QuizAnswer is one submitted answer of a quiz run.
type QuizAnswer struct {
	Selected []string `json:"selected"`
	DontKnow bool     `json:"dont_know"`
}

type QuizResultsRequest struct {
	Answers map[string]QuizAnswer `json:"answers"`
}

type QuizQuestionResult struct {
	Question        QuestionView    `json:"question"`
	SelectedAnswers []string        `json:"selected_answers"`
	CorrectAnswers  []string        `json:"correct_answers"`
	IsCorrect       bool            `json:"is_correct"`
	DontKnow        bool            `json:"dont_know"`
	Progress        progress.Record `json:"progress"`
}

type QuizSummary struct {
	TotalAnswered int     `json:"total_answered"`
	TotalCorrect  int     `json:"total_correct"`
	TotalDontKnow int     `json:"total_dont_know"`
	Accuracy      float64 `json:"accuracy"`
}

type QuizResultsResponse struct {
	Results []QuizQuestionResult `json:"results"`
	Summary QuizSummary          `json:"summary"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// startQuiz assembles a quiz run from selected question IDs.
// @Summary      Start a quiz
// @Description  Returns the selected verified questions with answers hidden. Unknown and unverified IDs are silently skipped.
// @Tags         Quiz
// @Accept       json
// @Produce      json
// @Param        body  body      StartQuizRequest  true  "Question IDs"
// @Success      200   {object}  StartQuizResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/quiz/start [post]
func (h *Handler) startQuiz(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	bank, err := h.bank(sess)
	if h.handleStoreError(w, err, "exam") {
		return
	}

	var req StartQuizRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	exam := h.currentExam(sess)
	ps := h.progress.Store(sess.Secret)

	questions := make([]QuestionView, 0, len(req.QuestionIDs))
	for _, id := range req.QuestionIDs {
		q, err := bank.Get(id)
		if err != nil || !q.IsVerified {
			continue
		}
		rec := ps.Record(exam, id)
		questions = append(questions, questionView(q, rec, false))
	}

	respondJSON(w, http.StatusOK, StartQuizResponse{
		Success:   true,
		Questions: questions,
		Total:     len(questions),
	})
}

// quizResults grades a finished quiz run and updates progress per question.
// @Summary      Finish a quiz
// @Description  Grades all submitted answers, records one attempt per question, and returns per-question results plus a summary. Dont-know answers count toward attempts but not toward the accuracy denominator.
// @Tags         Quiz
// @Accept       json
// @Produce      json
// @Param        body  body      QuizResultsRequest  true  "Submitted answers keyed by question ID"
// @Success      200   {object}  QuizResultsResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/quiz/results [post]
func (h *Handler) quizResults(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	bank, err := h.bank(sess)
	if h.handleStoreError(w, err, "exam") {
		return
	}

	var req QuizResultsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	exam := h.currentExam(sess)
	ps := h.progress.Store(sess.Secret)

	results := make([]QuizQuestionResult, 0, len(req.Answers))
	summary := QuizSummary{}

	for id, answer := range req.Answers {
		q, err := bank.Get(id)
		if err != nil {
			continue
		}

		outcome := progress.OutcomeIncorrect
		isCorrect := false
		if answer.DontKnow {
			outcome = progress.OutcomeDontKnow
			summary.TotalDontKnow++
		} else {
			if q.CheckSelection(answer.Selected) {
				outcome = progress.OutcomeCorrect
				isCorrect = true
				summary.TotalCorrect++
			}
			summary.TotalAnswered++
		}

		rec, err := ps.RecordAttempt(exam, id, outcome)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to save progress")
			return
		}

		results = append(results, QuizQuestionResult{
			Question:        questionView(q, rec, true),
			SelectedAnswers: answer.Selected,
			CorrectAnswers:  q.CorrectAnswerIDs(),
			IsCorrect:       isCorrect,
			DontKnow:        answer.DontKnow,
			Progress:        rec,
		})
	}

	if summary.TotalAnswered > 0 {
		summary.Accuracy = math.Round(float64(summary.TotalCorrect)/float64(summary.TotalAnswered)*1000) / 10
	}

	respondJSON(w, http.StatusOK, QuizResultsResponse{
		Results: results,
		Summary: summary,
	})
}
