package api

import (
	"net/http"
	"time"
)

// ── Request / Response types ────────────────────────────────────────────────

type ExportResponse struct {
	Version    string         `json:"version"`
	ExportedAt string         `json:"exported_at"`
	ExamName   string         `json:"exam_name"`
	Counts     map[string]int `json:"counts"`
	Questions  []QuestionView `json:"questions"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// exportExam dumps the current exam's question bank, answers included, for
// backup or offline editing.
// @Summary      Export the current exam
// @Description  Returns every question of the current exam (all statuses, correct answers visible) plus a status breakdown.
// @Tags         Export
// @Produce      json
// @Success      200  {object}  ExportResponse
// @Failure      401  {object}  AuthResponse
// @Router       /api/export [get]
func (h *Handler) exportExam(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	bank, err := h.bank(sess)
	if h.handleStoreError(w, err, "exam") {
		return
	}

	exam := h.currentExam(sess)
	records := h.progress.Store(sess.Secret).ExamRecords(exam)
	counts := bank.StatusCounts()

	all := bank.Questions()
	questions := make([]QuestionView, len(all))
	for i := range all {
		questions[i] = questionView(&all[i], records[all[i].ID], true)
	}

	respondJSON(w, http.StatusOK, ExportResponse{
		Version:    "1.0",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		ExamName:   exam,
		Counts: map[string]int{
			"total":     counts.Total,
			"pending":   counts.Pending,
			"suggested": counts.Suggested,
			"verified":  counts.Verified,
		},
		Questions: questions,
	})
}
