// internal/api/router.go
package api

import "net/http"

// RegisterRoutes wires all API routes onto the mux. Everything except the
// auth endpoints sits behind requireAuth.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Auth
	mux.HandleFunc("POST /api/auth/login", h.login)
	mux.HandleFunc("POST /api/auth/logout", h.logout)
	mux.HandleFunc("GET /api/auth/status", h.authStatus)

	// Exams
	mux.HandleFunc("GET /api/exams", h.requireAuth(h.listExams))
	mux.HandleFunc("POST /api/exam/switch", h.requireAuth(h.switchExam))

	// Questions
	mux.HandleFunc("GET /api/questions", h.requireAuth(h.listQuestions))
	mux.HandleFunc("GET /api/sections", h.requireAuth(h.listSections))
	mux.HandleFunc("GET /api/question/{questionID}", h.requireAuth(h.getQuestion))
	mux.HandleFunc("POST /api/question/{questionID}/check", h.requireAuth(h.checkAnswer))
	mux.HandleFunc("POST /api/question/{questionID}/mastered", h.requireAuth(h.setMastered))

	// Statistics
	mux.HandleFunc("GET /api/statistics", h.requireAuth(h.getStatistics))

	// Quiz runs
	mux.HandleFunc("POST /api/quiz/start", h.requireAuth(h.startQuiz))
	mux.HandleFunc("POST /api/quiz/results", h.requireAuth(h.quizResults))

	// Export
	mux.HandleFunc("GET /api/export", h.requireAuth(h.exportExam))
}
