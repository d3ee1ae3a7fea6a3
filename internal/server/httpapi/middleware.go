package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"linkarchive/internal/common"
	"linkarchive/internal/logging"
	"linkarchive/internal/server/models"
)

type ctxKey string

const userContextKey ctxKey = "linkarchive_user"

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userContextKey).(*models.User)
	return u, ok
}

// authenticate runs the full per-request identity chain: cookie, token
// validation through the provider, resolved user into the context. Nothing
// is cached between requests. A missing cookie and a rejected token produce
// the same response.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := SessionToken(r)
		if !ok {
			h.failedLogin(w, r)
			return
		}

		user, err := h.provider.Validate(r.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrFailedLogin) {
				h.failedLogin(w, r)
				return
			}
			h.internalError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// statusRecorder remembers the status code a handler wrote.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// requestLogger tags every request with an id and logs method, path, status
// and duration once the handler returns.
func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			log := logger.With("request_id", uuid.NewString())
			next.ServeHTTP(rec, r)

			log.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start).String(),
			)
		})
	}
}
