package http

import (
	"log/slog"
	"net/http"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing "+userIDHeader+" header")
		return
	}

	if summary, found := s.summaryCache.Get(uid); found {
		slog.DebugContext(r.Context(), "Summary cache hit", "user_id", uid)
		writeJSON(w, http.StatusOK, summary)
		return
	}

	summary, err := s.insightsSvc.Summarize(r.Context(), uid)
	if err != nil {
		slog.ErrorContext(r.Context(), "Summary failed", "user_id", uid, "error", err)
		writeInsightError(w, err)
		return
	}

	s.summaryCache.Set(uid, summary)
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing "+userIDHeader+" header")
		return
	}

	if resp, found := s.insightCache.Get(uid); found {
		slog.DebugContext(r.Context(), "Insight cache hit", "user_id", uid)
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp, err := s.insightsSvc.GenerateInsights(r.Context(), uid)
	if err != nil {
		slog.ErrorContext(r.Context(), "Insight generation failed", "user_id", uid, "error", err)
		writeInsightError(w, err)
		return
	}

	s.insightCache.Set(uid, *resp)
	writeJSON(w, http.StatusOK, resp)
}
