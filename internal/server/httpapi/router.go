package httpapi

import (
	"net/http"

	"linkarchive/internal/logging"
)

// NewRouter wires the handlers onto the mux. The links routes accept both
// the symbolic "self" and a concrete user id in the {user} segment; the
// ownership check treats them identically.
func NewRouter(h *Handler, logger logging.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/login", h.getLogin)
	mux.HandleFunc("POST /api/login", h.postLogin)
	mux.HandleFunc("POST /api/logout", h.postLogout)

	mux.Handle("GET /api/users/{user}/links", h.authenticate(http.HandlerFunc(h.getLinks)))
	mux.Handle("POST /api/users/{user}/links", h.authenticate(http.HandlerFunc(h.postLinks)))

	return requestLogger(logger)(mux)
}
