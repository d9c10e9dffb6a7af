package api

import (
	"errors"
	"net/http"

	"github.com/examtrainer/backend/internal/store"
)

// ── Request / Response types ────────────────────────────────────────────────

type ListExamsResponse struct {
	Exams       []string         `json:"exams"`
	ExamsInfo   []store.ExamInfo `json:"exams_info"`
	CurrentExam string           `json:"current_exam"`
}

type SwitchExamRequest struct {
	ExamName string `json:"exam_name"`
}

func (r *SwitchExamRequest) Validate() error {
	if r.ExamName == "" {
		return errors.New("exam_name is required")
	}
	return nil
}

type SwitchExamResponse struct {
	Success        bool   `json:"success"`
	ExamName       string `json:"exam_name"`
	QuestionsCount int    `json:"questions_count"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listExams returns the exam catalog and the session's current exam.
// @Summary      List exams
// @Tags         Exams
// @Produce      json
// @Success      200  {object}  ListExamsResponse
// @Failure      401  {object}  AuthResponse
// @Router       /api/exams [get]
func (h *Handler) listExams(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	catalog := h.banks.Catalog()

	respondJSON(w, http.StatusOK, ListExamsResponse{
		Exams:       catalog.Names(),
		ExamsInfo:   catalog.Exams(),
		CurrentExam: h.currentExam(sess),
	})
}

// switchExam selects another exam for the session.
// @Summary      Switch exam
// @Tags         Exams
// @Accept       json
// @Produce      json
// @Param        body  body      SwitchExamRequest  true  "Exam to switch to"
// @Success      200   {object}  SwitchExamResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/exam/switch [post]
func (h *Handler) switchExam(w http.ResponseWriter, r *http.Request) {
	sess := session(r)

	var req SwitchExamRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if !h.banks.Catalog().Has(req.ExamName) {
		respondError(w, http.StatusNotFound, "exam not found")
		return
	}

	if err := h.sessions.SetExam(sess.ID, req.ExamName); err != nil {
		h.logger.Error("switching exam failed", "error", err, "exam", req.ExamName)
		respondError(w, http.StatusInternalServerError, "failed to switch exam")
		return
	}

	bank, err := h.banks.Bank(req.ExamName)
	if h.handleStoreError(w, err, "exam") {
		return
	}

	respondJSON(w, http.StatusOK, SwitchExamResponse{
		Success:        true,
		ExamName:       req.ExamName,
		QuestionsCount: len(bank.Verified()),
	})
}
