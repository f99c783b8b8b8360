package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/andrewpaige1/recallcards-api/flashcards"
)

// Handler serves the flashcard API on top of a flashcards.Service.
type Handler struct {
	Cards *flashcards.Service
	Log   *zap.Logger
}

func NewHandler(cards *flashcards.Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Cards: cards, Log: log}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": http.StatusOK})
}

func writeStatus(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"status": status, "error": message})
}

func decodeBody(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// writeError maps a service error onto a status code. Unexpected errors are
// logged and answered without detail.
func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, flashcards.ErrInvalidArgument):
		writeStatus(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, flashcards.ErrNotFound):
		writeStatus(w, http.StatusNotFound, err.Error())
	case errors.Is(err, flashcards.ErrAlreadyExists):
		writeStatus(w, http.StatusConflict, err.Error())
	case errors.Is(err, flashcards.ErrForbidden):
		writeStatus(w, http.StatusForbidden, err.Error())
	case errors.Is(err, flashcards.ErrStoreUnavailable):
		writeStatus(w, http.StatusInternalServerError, "Database not connected")
	default:
		h.Log.Error(op+": unexpected error", zap.Error(err))
		writeStatus(w, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}
