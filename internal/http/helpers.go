package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"finsight/internal/insights"
)

const userIDHeader = "X-User-ID"

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// userID extracts the caller's opaque user identifier. Every read and
// write is scoped by it.
func userID(r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.Header.Get(userIDHeader))
	return id, id != ""
}

// decodeBody decodes a JSON request body, preserving numeric precision
// by leaving raw numbers as json.Number for amount coercion.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(v)
}

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

// writeInsightError maps pipeline failures to status codes: missing
// configuration is the server's fault, upstream fetch and generation
// failures are bad-gateway. The structured message is safe to show;
// raw generator payloads stay in the logs.
func writeInsightError(w http.ResponseWriter, err error) {
	var cfgErr *insights.ConfigurationError
	var fetchErr *insights.FetchError
	var genErr *insights.GenerationError

	switch {
	case errors.As(err, &cfgErr):
		writeError(w, http.StatusInternalServerError, cfgErr.Error())
	case errors.As(err, &fetchErr):
		writeError(w, http.StatusBadGateway, fetchErr.Error())
	case errors.As(err, &genErr):
		writeError(w, http.StatusBadGateway, genErr.Error())
	default:
		writeError(w, http.StatusInternalServerError, "failed to generate insights, try again")
	}
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}
