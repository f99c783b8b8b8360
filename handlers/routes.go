package handlers

import "net/http"

// NewRouter registers the API routes. requireToken guards the routes that
// need a verified identity.
func NewRouter(h *Handler, requireToken func(http.Handler) http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	// Cards
	mux.HandleFunc("GET /api/words", h.GetAllWords)
	mux.HandleFunc("GET /api/words/rand/{token}", h.GetWord)
	mux.HandleFunc("POST /api/sendwords", h.SendWord)
	mux.HandleFunc("DELETE /api/delword/{word}", h.DeleteWord)
	mux.HandleFunc("POST /api/editword", h.EditWord)

	// Identity
	mux.Handle("POST /api/token", requireToken(http.HandlerFunc(h.VerifyToken)))

	// Collections
	mux.HandleFunc("GET /api/collections/{token}", h.GetCollections)
	mux.HandleFunc("GET /api/collections/{token}/stats", h.CollectionStats)
	mux.HandleFunc("POST /api/collections", h.CreateCollection)
	mux.HandleFunc("POST /api/collections/default", h.SetDefaultCollection)
	mux.HandleFunc("DELETE /api/collections/{name}", h.DeleteCollection)
	mux.HandleFunc("PUT /api/collections/{name}/rename", h.RenameCollection)

	mux.HandleFunc("GET /healthz", h.Health)

	return mux
}
