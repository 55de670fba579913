package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/recipekeeper/internal/common"
	"github.com/dmitrijs2005/recipekeeper/internal/server/auth"
	"github.com/google/uuid"
)

type ctxKey string

const identityKey ctxKey = "identity"

// identityFromContext returns the identity the session middleware attached,
// or nil when the request never passed authentication.
func identityFromContext(ctx context.Context) *auth.Identity {
	ident, _ := ctx.Value(identityKey).(*auth.Identity)
	return ident
}

// statusRecorder captures the status code written by a handler so the access
// log can report it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestLogging tags every request with a request id and writes one access
// log line when it completes.
func (s *Server) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := s.logger.With("request_id", uuid.New().String())

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}

// authenticate extracts the session token from the cookie and verifies it.
// Any failure collapses into common.ErrInvalidToken: a missing, malformed,
// expired or forged token is simply "not logged in", never a server fault.
func (s *Server) authenticate(r *http.Request) (*auth.Identity, error) {
	cookie, err := r.Cookie(common.SessionCookieName)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	ident, err := auth.GetIdentityFromToken(cookie.Value, s.jwtSecret)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	return ident, nil
}

// requireSession guards browser-facing routes: unauthenticated requests are
// redirected to the login view and any stale cookie is cleared. The verified
// identity rides on the request context; no store lookup re-checks that the
// account still exists or still holds the embedded role.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, err := s.authenticate(r)
		if err != nil {
			s.clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, ident)
		next(w, r.WithContext(ctx))
	}
}

// requireSessionAPI guards JSON routes: unauthenticated requests get 401.
func (s *Server) requireSessionAPI(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, err := s.authenticate(r)
		if err != nil {
			s.clearSessionCookie(w)
			s.writeJSONError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, ident)
		next(w, r.WithContext(ctx))
	}
}

// setSessionCookie stores the signed token client-side. The cookie is
// HttpOnly and SameSite=Lax; Secure is left to the TLS terminator. Its
// lifetime matches the token validity, or the browser session when expiry
// is disabled.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	cookie := &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if s.tokenValidity > 0 {
		cookie.MaxAge = int(s.tokenValidity.Seconds())
	}
	http.SetCookie(w, cookie)
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
