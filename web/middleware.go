package web

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/web/session"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeySessionID stores the browser's session key for the request
	ContextKeySessionID ContextKey = "session_id"
)

func SessionIDFromContext(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(ContextKeySessionID).(string)
	return sid, ok
}

// protectedPrefixes are the path prefixes the Request Gate guards,
// matched case-insensitively.
var protectedPrefixes = []string{
	"/dashboard",
	"/vehicles",
	"/trips",
	"/billing",
	"/profile",
	"/admin",
}

func isProtectedPath(path string) bool {
	lowered := strings.ToLower(path)
	for _, prefix := range protectedPrefixes {
		if strings.HasPrefix(lowered, prefix) {
			return true
		}
	}
	return false
}

func ChainMiddleware(routeFunction http.HandlerFunc, mw ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	chainedHandler := routeFunction
	// Apply middleware in reverse order
	for i := len(mw) - 1; i >= 0; i-- {
		chainedHandler = mw[i](chainedHandler)
	}
	return chainedHandler
}

// PageMiddleware is the chain every page route runs: session resolution,
// logging, panic recovery, persistent-cookie rehydration, then the gate.
func (s *Server) PageMiddleware() []func(http.HandlerFunc) http.HandlerFunc {
	return []func(http.HandlerFunc) http.HandlerFunc{
		s.SessionMiddleware,
		s.LoggingMiddleware,
		s.RecoverMiddleware,
		s.AutoRehydrationMiddleware,
		s.RequestGateMiddleware,
	}
}

// SessionMiddleware resolves or mints the browser's session ID and makes it
// available to the rest of the request pipeline.
func (s *Server) SessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sid string
		if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
			sid = cookie.Value
		} else {
			sid = session.NewID()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteStrictMode,
			})
		}
		ctx := context.WithValue(r.Context(), ContextKeySessionID, sid)
		next(w, r.WithContext(ctx))
	}
}

func (s *Server) LoggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.env == "DEV" {
			s.log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("request")
		}
		next(w, r)
	}
}

func (s *Server) RecoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("recovered from panic")
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
		}()
		next(w, r)
	}
}

// AutoRehydrationMiddleware runs before the Request Gate: when no active
// session exists but the persistent cookie pair does, the session is
// reconstructed transparently. A corrupted cookie degrades to "logged out"
// rather than failing the request.
func (s *Server) AutoRehydrationMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.gateway.Rehydrate(w, r)
		next(w, r)
	}
}

// RequestGateMiddleware redirects unauthenticated requests away from
// protected path prefixes before any handler runs. Any panic during the
// check is treated as "deny", never as "allow".
func (s *Server) RequestGateMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !isProtectedPath(r.URL.Path) {
			next(w, r)
			return
		}

		allowed := false
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					s.log.Error().Interface("panic", rec).Msg("authentication check panicked, denying")
					allowed = false
				}
			}()

			if !s.gateway.IsAuthenticated(w, r) {
				return
			}
			// Defensive invariant: authenticated implies a non-empty token.
			if s.gateway.Token(w, r) == "" {
				s.gateway.ClearSession(w, r)
				return
			}
			allowed = true
		}()

		if !allowed {
			redirectToLogin(w, r)
			return
		}

		if strings.HasPrefix(strings.ToLower(r.URL.Path), "/admin") {
			if profile, ok := s.gateway.CurrentUser(w, r); !ok || !profile.IsAdministrator() {
				http.Redirect(w, r, RouteDashboard, http.StatusFound)
				return
			}
		}

		next(w, r)
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := RouteLogin + "?ReturnUrl=" + url.QueryEscape(r.URL.Path)
	http.Redirect(w, r, target, http.StatusFound)
}

// localReturnURL accepts only same-site paths so the login redirect cannot
// be abused as an open redirect.
func localReturnURL(returnURL string) string {
	if returnURL == "" || !strings.HasPrefix(returnURL, "/") || strings.HasPrefix(returnURL, "//") {
		return ""
	}
	return returnURL
}
