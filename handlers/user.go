package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/andrewpaige1/recallcards-api/utils"
)

// POST /api/token
// Reached only through EnsureValidToken; answers with the verified user key.
func (h *Handler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	userKey, ok := utils.GetUserKey(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"code":        "invalid_claims",
			"description": "token carries no email or subject",
		})
		return
	}
	h.Log.Debug("VerifyToken: verified caller", zap.String("user", userKey))
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": http.StatusOK, "user": userKey})
}

// GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Cards.Ping(r.Context()); err != nil {
		h.Log.Warn("Health: store unavailable", zap.Error(err))
		writeStatus(w, http.StatusServiceUnavailable, "Database not connected")
		return
	}
	writeOK(w)
}
