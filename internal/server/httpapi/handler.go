package httpapi

import (
	"errors"
	"io"
	"net/http"

	"linkarchive/internal/common"
	"linkarchive/internal/logging"
	"linkarchive/internal/server/auth"
	"linkarchive/internal/server/render"
	"linkarchive/internal/server/services"
)

type Handler struct {
	logger   logging.Logger
	provider auth.Provider
	links    *services.LinkService
	render   *render.Renderer
}

func NewHandler(logger logging.Logger, provider auth.Provider, links *services.LinkService, render *render.Renderer) *Handler {
	return &Handler{
		logger:   logger,
		provider: provider,
		links:    links,
		render:   render,
	}
}

func (h *Handler) getLogin(w http.ResponseWriter, r *http.Request) {
	html, err := h.render.Login()
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, html)
}

func (h *Handler) postLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	token, err := h.provider.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, common.ErrFailedLogin) {
			h.failedLogin(w, r)
			return
		}
		h.internalError(w, r, err)
		return
	}

	SetSessionCookie(w, token)
	http.Redirect(w, r, "/api/users/self/links", http.StatusSeeOther)
}

func (h *Handler) postLogout(w http.ResponseWriter, r *http.Request) {
	ClearSessionCookie(w)
	http.Redirect(w, r, "/api/login", http.StatusSeeOther)
}

func (h *Handler) getLinks(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.targetUserID(w, r)
	if !ok {
		return
	}
	h.renderLinks(w, r, userID)
}

func (h *Handler) postLinks(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.targetUserID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if err := h.links.Import(r.Context(), userID, r.PostFormValue("links")); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.renderLinks(w, r, userID)
}

// targetUserID parses the {user} path segment ("self" or a decimal id) and
// runs it through the ownership check against the authenticated caller.
func (h *Handler) targetUserID(w http.ResponseWriter, r *http.Request) (uint32, bool) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		// authenticate always runs first; a missing user is a wiring bug.
		h.internalError(w, r, errors.New("no user in request context"))
		return 0, false
	}

	target, err := auth.ParseTarget(r.PathValue("user"))
	if err != nil {
		http.NotFound(w, r)
		return 0, false
	}

	userID, err := auth.Authorize(user, target)
	if err != nil {
		h.writeError(w, r, err)
		return 0, false
	}

	return userID, true
}

func (h *Handler) renderLinks(w http.ResponseWriter, r *http.Request, userID uint32) {
	// The ownership check only ever resolves to the caller, so the context
	// user is the page's owner.
	user, _ := UserFromContext(r.Context())

	list, err := h.links.List(r.Context(), userID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	html, err := h.render.UsersLinks(user, list, true)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	writeHTML(w, http.StatusOK, html)
}

// writeError maps a domain error onto its client-visible response class.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *common.InvalidURLError
	var dup *common.DuplicateURLError

	switch {
	case errors.As(err, &invalid):
		http.Error(w, invalid.Error(), http.StatusBadRequest)
	case errors.As(err, &dup):
		http.Error(w, dup.Error(), http.StatusConflict)
	case errors.Is(err, common.ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusForbidden)
	case errors.Is(err, common.ErrFailedLogin):
		h.failedLogin(w, r)
	default:
		h.internalError(w, r, err)
	}
}

// failedLogin writes the one undifferentiated 401 response used for every
// authentication failure.
func (h *Handler) failedLogin(w http.ResponseWriter, r *http.Request) {
	html, err := h.render.FailedLogin()
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeHTML(w, http.StatusUnauthorized, html)
}

// internalError logs the cause and returns an opaque 500.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error(r.Context(), "internal error", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func writeHTML(w http.ResponseWriter, status int, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, html)
}
