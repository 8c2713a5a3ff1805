package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/zarahshmi/backend-guesswordd/internal/wordgame"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeServiceError maps a domain error to its HTTP status. Anything
// without a known kind is logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var status int
	switch wordgame.KindOf(err) {
	case wordgame.KindInvalidInput:
		status = http.StatusBadRequest
	case wordgame.KindNotFound:
		status = http.StatusNotFound
	case wordgame.KindForbidden:
		status = http.StatusForbidden
	case wordgame.KindInvalidState, wordgame.KindConflict:
		status = http.StatusConflict
	default:
		logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

type MessageResponse struct {
	Message string `json:"message"`
}
