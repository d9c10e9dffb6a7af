package api

import (
	"fmt"
	"net/http"

	"github.com/examtrainer/backend/internal/domain/progress"
)

// ── Request / Response types ────────────────────────────────────────────────

type StatisticsResponse struct {
	Overall  progress.ExamStats      `json:"overall"`
	Sections []progress.SectionStats `json:"sections"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// getStatistics returns exam-level and per-section progress statistics.
// @Summary      Get statistics
// @Description  Aggregates mastery/attempt/accuracy percentages over the verified questions of the current exam, overall and per section.
// @Tags         Statistics
// @Produce      json
// @Success      200  {object}  StatisticsResponse
// @Failure      401  {object}  AuthResponse
// @Router       /api/statistics [get]
func (h *Handler) getStatistics(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	bank, err := h.bank(sess)
	if h.handleStoreError(w, err, "exam") {
		return
	}

	exam := h.currentExam(sess)
	verified := bank.Verified()

	verifiedIDs := make([]string, len(verified))
	for i, q := range verified {
		verifiedIDs[i] = q.ID
	}

	ps := h.progress.Store(sess.Secret)
	overall := ps.ExamStats(exam, verifiedIDs)
	sections := ps.SectionStats(exam, verified)

	for i := range sections {
		if sections[i].Name == "" {
			sections[i].Name = fmt.Sprintf("Section %d", sections[i].SectionNumber)
		}
	}
	if sections == nil {
		sections = []progress.SectionStats{}
	}

	respondJSON(w, http.StatusOK, StatisticsResponse{
		Overall:  overall,
		Sections: sections,
	})
}
