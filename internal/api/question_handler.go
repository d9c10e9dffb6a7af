package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/examtrainer/backend/internal/domain/progress"
	"github.com/examtrainer/backend/internal/domain/question"
	"github.com/examtrainer/backend/internal/store"
)

// ── Request / Response types ────────────────────────────────────────────────

type AnswerView struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCorrect   bool   `json:"is_correct"`
	IsSuggested bool   `json:"is_suggested"`
}

// QuestionView is a question together with the caller's progress on it.
// When answers are hidden the correctness flags are blanked so the client
// cannot peek before checking.
type QuestionView struct {
	ID             string          `json:"id"`
	Text           string          `json:"text"`
	Type           string          `json:"type"`
	Answers        []AnswerView    `json:"answers"`
	Note           *string         `json:"note"`
	QuestionNumber *string         `json:"question_number"`
	SectionNumber  *int            `json:"section_number"`
	SectionName    *string         `json:"section_name,omitempty"`
	ExamName       string          `json:"exam_name"`
	Progress       progress.Record `json:"progress"`
}

type ListQuestionsResponse struct {
	Questions []QuestionView `json:"questions"`
	Total     int            `json:"total"`
}

type ListSectionsResponse struct {
	Sections []store.SectionInfo `json:"sections"`
}

type GetQuestionResponse struct {
	Question QuestionView `json:"question"`
}

type CheckAnswerRequest struct {
	SelectedAnswers []string `json:"selected_answers"`
	DontKnow        bool     `json:"dont_know"`
}

type CheckAnswerResponse struct {
	IsCorrect      bool            `json:"is_correct"`
	CorrectAnswers []string        `json:"correct_answers"`
	Progress       progress.Record `json:"progress"`
	Mastered       bool            `json:"mastered"`
}

type SetMasteredRequest struct {
	Mastered bool `json:"mastered"`
}

type SetMasteredResponse struct {
	Success  bool            `json:"success"`
	Progress progress.Record `json:"progress"`
}

func questionView(q *question.Question, rec progress.Record, showAnswers bool) QuestionView {
	answers := make([]AnswerView, len(q.Answers))
	for i, a := range q.Answers {
		answers[i] = AnswerView{ID: a.ID, Text: a.Text}
		if showAnswers {
			answers[i].IsCorrect = a.IsCorrect
			answers[i].IsSuggested = a.IsSuggested
		}
	}
	return QuestionView{
		ID:             q.ID,
		Text:           q.Text,
		Type:           string(q.Type),
		Answers:        answers,
		Note:           q.Note,
		QuestionNumber: q.QuestionNumber,
		SectionNumber:  q.SectionNumber,
		SectionName:    q.SectionName,
		ExamName:       q.ExamName,
		Progress:       rec,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listQuestions returns verified questions with the caller's progress.
// @Summary      List questions
// @Description  Lists verified questions of the current exam. Supports hide_mastered (default true), section, status (not_attempted|with_errors|mastered) and search query parameters.
// @Tags         Questions
// @Produce      json
// @Param        hide_mastered  query     bool    false  "hide mastered questions (default true)"
// @Param        section        query     int     false  "filter by section number"
// @Param        status         query     string  false  "not_attempted, with_errors or mastered"
// @Param        search         query     string  false  "case-insensitive text search"
// @Success      200            {object}  ListQuestionsResponse
// @Failure      401            {object}  AuthResponse
// @Router       /api/questions [get]
func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	bank, err := h.bank(sess)
	if h.handleStoreError(w, err, "exam") {
		return
	}

	exam := h.currentExam(sess)
	records := h.progress.Store(sess.Secret).ExamRecords(exam)

	hideMastered := !strings.EqualFold(r.URL.Query().Get("hide_mastered"), "false")
	statusFilter := strings.TrimSpace(r.URL.Query().Get("status"))
	searchQuery := strings.TrimSpace(r.URL.Query().Get("search"))
	sectionFilter := strings.TrimSpace(r.URL.Query().Get("section"))

	questions := bank.Verified()

	if sectionFilter != "" {
		if num, err := strconv.Atoi(sectionFilter); err == nil {
			var filtered []question.Question
			for _, q := range questions {
				if q.SectionNumber != nil && *q.SectionNumber == num {
					filtered = append(filtered, q)
				}
			}
			questions = filtered
		}
	}

	if searchQuery != "" {
		var filtered []question.Question
		for _, q := range questions {
			if q.Matches(searchQuery) {
				filtered = append(filtered, q)
			}
		}
		questions = filtered
	}

	result := make([]QuestionView, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		rec := records[q.ID]

		switch statusFilter {
		case "not_attempted":
			if rec.Attempts > 0 {
				continue
			}
		case "with_errors":
			if rec.Attempts == 0 || rec.Attempts == rec.TotalCorrect {
				continue
			}
		case "mastered":
			if !rec.Mastered {
				continue
			}
		}

		// Applied after the status filter so status=mastered still lists them.
		if hideMastered && rec.Mastered && statusFilter != "mastered" {
			continue
		}

		result = append(result, questionView(q, rec, true))
	}

	respondJSON(w, http.StatusOK, ListQuestionsResponse{
		Questions: result,
		Total:     len(result),
	})
}

// listSections returns the sections of the current exam.
// @Summary      List sections
// @Tags         Questions
// @Produce      json
// @Success      200  {object}  ListSectionsResponse
// @Failure      401  {object}  AuthResponse
// @Router       /api/sections [get]
func (h *Handler) listSections(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	bank, err := h.bank(sess)
	if h.handleStoreError(w, err, "exam") {
		return
	}

	sections := bank.Sections()
	if sections == nil {
		sections = []store.SectionInfo{}
	}
	respondJSON(w, http.StatusOK, ListSectionsResponse{Sections: sections})
}

// getQuestion returns one verified question.
// @Summary      Get a question
// @Description  Returns a verified question. Pass show_answers=true to reveal correctness flags (after checking).
// @Tags         Questions
// @Produce      json
// @Param        questionID    path      string  true   "Question ID"
// @Param        show_answers  query     bool    false  "reveal correct answers"
// @Success      200           {object}  GetQuestionResponse
// @Failure      400           {object}  map[string]string  "question not verified"
// @Failure      404           {object}  map[string]string
// @Router       /api/question/{questionID} [get]
func (h *Handler) getQuestion(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	bank, err := h.bank(sess)
	if h.handleStoreError(w, err, "exam") {
		return
	}

	q, err := bank.Get(r.PathValue("questionID"))
	if h.handleStoreError(w, err, "question") {
		return
	}
	if !q.IsVerified {
		respondError(w, http.StatusBadRequest, "question has no verified answer")
		return
	}

	showAnswers := strings.EqualFold(r.URL.Query().Get("show_answers"), "true")
	rec := h.progress.Store(sess.Secret).Record(h.currentExam(sess), q.ID)

	respondJSON(w, http.StatusOK, GetQuestionResponse{
		Question: questionView(q, rec, showAnswers),
	})
}

// checkAnswer grades a submitted answer and updates progress.
// @Summary      Check an answer
// @Description  Compares the selected answer set against the correct one (exact set equality) and records the attempt.
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Param        questionID  path      string              true  "Question ID"
// @Param        body        body      CheckAnswerRequest  true  "Selected answers"
// @Success      200         {object}  CheckAnswerResponse
// @Failure      404         {object}  map[string]string
// @Router       /api/question/{questionID}/check [post]
func (h *Handler) checkAnswer(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	bank, err := h.bank(sess)
	if h.handleStoreError(w, err, "exam") {
		return
	}

	q, err := bank.Get(r.PathValue("questionID"))
	if h.handleStoreError(w, err, "question") {
		return
	}

	var req CheckAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	exam := h.currentExam(sess)
	ps := h.progress.Store(sess.Secret)

	outcome := progress.OutcomeIncorrect
	isCorrect := false
	if req.DontKnow {
		outcome = progress.OutcomeDontKnow
	} else if q.CheckSelection(req.SelectedAnswers) {
		outcome = progress.OutcomeCorrect
		isCorrect = true
	}

	rec, err := ps.RecordAttempt(exam, q.ID, outcome)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save progress")
		return
	}

	respondJSON(w, http.StatusOK, CheckAnswerResponse{
		IsCorrect:      isCorrect,
		CorrectAnswers: q.CorrectAnswerIDs(),
		Progress:       rec,
		Mastered:       rec.Mastered,
	})
}

// setMastered sets or clears the mastered mark.
// @Summary      Toggle mastered
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Param        questionID  path      string              true  "Question ID"
// @Param        body        body      SetMasteredRequest  true  "Mastered flag"
// @Success      200         {object}  SetMasteredResponse
// @Failure      404         {object}  map[string]string
// @Router       /api/question/{questionID}/mastered [post]
func (h *Handler) setMastered(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	bank, err := h.bank(sess)
	if h.handleStoreError(w, err, "exam") {
		return
	}

	q, err := bank.Get(r.PathValue("questionID"))
	if h.handleStoreError(w, err, "question") {
		return
	}

	var req SetMasteredRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rec, err := h.progress.Store(sess.Secret).SetMastered(h.currentExam(sess), q.ID, req.Mastered)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save progress")
		return
	}

	respondJSON(w, http.StatusOK, SetMasteredResponse{
		Success:  true,
		Progress: rec,
	})
}
