package handlers

import (
	"net/http"
)

// GET /api/collections/{token}
func (h *Handler) GetCollections(w http.ResponseWriter, r *http.Request) {
	list, err := h.Cards.ListCollections(r.Context(), r.PathValue("token"))
	if err != nil {
		h.writeError(w, "GetCollections", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"collections":        list.Names,
		"default_collection": list.DefaultCollection,
	})
}

type collectionRequest struct {
	Token          string `json:"token"`
	CollectionName string `json:"collection_name"`
}

// POST /api/collections
func (h *Handler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var req collectionRequest
	if err := decodeBody(r, &req); err != nil || req.Token == "" {
		writeStatus(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if err := h.Cards.CreateCollection(r.Context(), req.Token, req.CollectionName); err != nil {
		h.writeError(w, "CreateCollection", err)
		return
	}
	writeOK(w)
}

// DELETE /api/collections/{name}
func (h *Handler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := decodeBody(r, &req); err != nil || req.Token == "" {
		writeStatus(w, http.StatusBadRequest, "Missing token in request body")
		return
	}

	if err := h.Cards.DeleteCollection(r.Context(), req.Token, r.PathValue("name")); err != nil {
		h.writeError(w, "DeleteCollection", err)
		return
	}
	writeOK(w)
}

// POST /api/collections/default
func (h *Handler) SetDefaultCollection(w http.ResponseWriter, r *http.Request) {
	var req collectionRequest
	if err := decodeBody(r, &req); err != nil || req.Token == "" || req.CollectionName == "" {
		writeStatus(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if err := h.Cards.SetDefault(r.Context(), req.Token, req.CollectionName); err != nil {
		h.writeError(w, "SetDefaultCollection", err)
		return
	}
	writeOK(w)
}

// PUT /api/collections/{name}/rename
func (h *Handler) RenameCollection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token             string `json:"token"`
		NewCollectionName string `json:"new_collection_name"`
	}
	if err := decodeBody(r, &req); err != nil || req.Token == "" {
		writeStatus(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	err := h.Cards.RenameCollection(r.Context(), req.Token, r.PathValue("name"), req.NewCollectionName)
	if err != nil {
		h.writeError(w, "RenameCollection", err)
		return
	}
	writeOK(w)
}

// GET /api/collections/{token}/stats
func (h *Handler) CollectionStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Cards.Stats(r.Context(), r.PathValue("token"))
	if err != nil {
		h.writeError(w, "CollectionStats", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"stats": stats})
}
