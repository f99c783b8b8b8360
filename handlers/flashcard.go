package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/andrewpaige1/recallcards-api/flashcards"
)

// GET /api/words
func (h *Handler) GetAllWords(w http.ResponseWriter, r *http.Request) {
	all, err := h.Cards.AllCards(r.Context())
	if errors.Is(err, flashcards.ErrStoreUnavailable) {
		writeJSON(w, http.StatusOK, map[string]interface{}{})
		return
	}
	if err != nil {
		h.writeError(w, "GetAllWords", err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

// GET /api/words/rand/{token}?collection=&index=
func (h *Handler) GetWord(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	query := r.URL.Query()

	card, err := h.Cards.Pick(r.Context(), token, query.Get("collection"), query.Get("index"))
	if err != nil && !errors.Is(err, flashcards.ErrStoreUnavailable) {
		h.writeError(w, "GetWord", err)
		return
	}
	writeJSON(w, http.StatusOK, []string{card.Term, card.Answer})
}

// POST /api/sendwords
func (h *Handler) SendWord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token      string  `json:"token"`
		Word       string  `json:"word"`
		Ans        *string `json:"ans"`
		Collection string  `json:"collection"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeStatus(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Token == "" || req.Word == "" || req.Ans == nil {
		writeStatus(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if err := h.Cards.UpsertCard(r.Context(), req.Token, req.Collection, req.Word, *req.Ans); err != nil {
		h.writeError(w, "SendWord", err)
		return
	}
	writeOK(w)
}

// DELETE /api/delword/{word}
func (h *Handler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	var req struct {
		Token      string `json:"token"`
		Collection string `json:"collection"`
	}
	if err := decodeBody(r, &req); err != nil || req.Token == "" {
		writeStatus(w, http.StatusBadRequest, "Missing token in request body")
		return
	}

	if err := h.Cards.DeleteCard(r.Context(), req.Token, req.Collection, word); err != nil {
		h.writeError(w, "DeleteWord", err)
		return
	}
	h.Log.Debug("DeleteWord: deleted card", zap.String("token", req.Token), zap.String("word", word))
	writeOK(w)
}

// POST /api/editword
func (h *Handler) EditWord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token      string  `json:"token"`
		OldWord    string  `json:"oldword"`
		Word       string  `json:"word"`
		Ans        *string `json:"ans"`
		Collection string  `json:"collection"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeStatus(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Token == "" || req.OldWord == "" || req.Word == "" || req.Ans == nil {
		writeStatus(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	err := h.Cards.EditCard(r.Context(), req.Token, req.Collection, req.OldWord, req.Word, *req.Ans)
	if err != nil {
		h.writeError(w, "EditWord", err)
		return
	}
	writeOK(w)
}
