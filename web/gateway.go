package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/api"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/users"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/web/session"
)

// Session slot names
const (
	SlotToken = "token"
	// SlotCurrentUser caches the serialized profile.
	SlotCurrentUser = "currentUserJson"
	// SlotRefreshToken is written at login but consumed by no verification
	// path in this design.
	SlotRefreshToken = "refreshToken"
)

// AuthAPI is the slice of the backend the gateway depends on.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	Profile(ctx context.Context, token string) (*users.Profile, error)
}

// AuthResult is what the login pages get back from the gateway.
type AuthResult struct {
	Success bool
	Message string
	Token   string
	User    *users.Profile
}

// Gateway answers "is this request authenticated, and as whom". It unifies
// two caches of the same identity: the server session (authoritative when
// present) and the persistent cookie pair (long-lived fallback, promoted
// into the session on hit).
type Gateway struct {
	sessions     *session.Store
	backend      AuthAPI
	cookieMaxAge time.Duration
	log          zerolog.Logger
}

func NewGateway(sessions *session.Store, backend AuthAPI, cookieMaxAge time.Duration, log zerolog.Logger) *Gateway {
	return &Gateway{
		sessions:     sessions,
		backend:      backend,
		cookieMaxAge: cookieMaxAge,
		log:          log,
	}
}

// Token resolves the caller's token: session slot first, else the
// persistent cookie, which is written back into the session so later calls
// in the same session hit the faster path.
func (g *Gateway) Token(w http.ResponseWriter, r *http.Request) string {
	sid := g.sessionID(w, r)

	if tok, ok := g.sessions.Get(sid, SlotToken); ok && tok != "" {
		return tok
	}

	tok := readPersistentToken(r)
	if tok != "" {
		g.sessions.Set(sid, SlotToken, tok)
	}
	return tok
}

// IsAuthenticated reports whether either identity cache holds a token. A
// persistent-cookie hit is promoted into the session as a side effect.
func (g *Gateway) IsAuthenticated(w http.ResponseWriter, r *http.Request) bool {
	return g.Token(w, r) != ""
}

// CurrentUser resolves the caller's profile: session cache, then persistent
// cookie, then a live backend fetch keyed by the token. Successful results
// are written back into both caches.
func (g *Gateway) CurrentUser(w http.ResponseWriter, r *http.Request) (*users.Profile, bool) {
	sid := g.sessionID(w, r)

	if cached, ok := g.sessions.Get(sid, SlotCurrentUser); ok && cached != "" {
		var profile users.Profile
		if err := json.Unmarshal([]byte(cached), &profile); err == nil {
			return &profile, true
		}
		g.sessions.Remove(sid, SlotCurrentUser)
	}

	if profile, found, err := readPersistentUser(r); err != nil {
		// Corrupted cookie pair: recover by deleting it, not by failing.
		g.log.Warn().Err(err).Msg("corrupted persistent user cookie, clearing")
		clearPersistentLogin(w)
	} else if found {
		g.cacheProfile(sid, profile)
		return profile, true
	}

	tok := g.Token(w, r)
	if tok == "" {
		return nil, false
	}

	profile, err := g.backend.Profile(r.Context(), tok)
	if err != nil {
		g.log.Warn().Err(err).Msg("live profile fetch failed")
		return nil, false
	}
	g.cacheProfile(sid, profile)
	if err := setPersistentLogin(w, tok, profile, g.cookieMaxAge); err != nil {
		g.log.Warn().Err(err).Msg("persistent cookie write failed")
	}
	return profile, true
}

// Login delegates credential verification to the backend; on success both
// identity caches are populated. On failure no state changes.
func (g *Gateway) Login(w http.ResponseWriter, r *http.Request, email, password string) AuthResult {
	resp, err := g.backend.Login(r.Context(), email, password)
	if err != nil {
		g.log.Error().Err(err).Msg("backend login call failed")
		return AuthResult{Success: false, Message: "service unavailable, try again later"}
	}
	if !resp.Success || resp.Token == "" {
		message := resp.Message
		if message == "" {
			message = "incorrect email or password"
		}
		return AuthResult{Success: false, Message: message}
	}

	sid := g.sessionID(w, r)
	g.sessions.Set(sid, SlotToken, resp.Token)
	if resp.RefreshToken != "" {
		g.sessions.Set(sid, SlotRefreshToken, resp.RefreshToken)
	}
	if resp.User != nil {
		g.cacheProfile(sid, resp.User)
	}
	if err := setPersistentLogin(w, resp.Token, resp.User, g.cookieMaxAge); err != nil {
		g.log.Warn().Err(err).Msg("persistent cookie write failed")
	}

	return AuthResult{Success: true, Token: resp.Token, User: resp.User}
}

// Register creates a new account through the backend. Registration logs
// the new user straight in, so success populates the same caches as Login.
func (g *Gateway) Register(w http.ResponseWriter, r *http.Request, req api.RegisterRequest) AuthResult {
	resp, err := g.backend.Register(r.Context(), req)
	if err != nil {
		g.log.Error().Err(err).Msg("backend register call failed")
		return AuthResult{Success: false, Message: "service unavailable, try again later"}
	}
	if !resp.Success || resp.Token == "" {
		message := resp.Message
		if message == "" {
			message = "registration failed"
		}
		return AuthResult{Success: false, Message: message}
	}

	sid := g.sessionID(w, r)
	g.sessions.Set(sid, SlotToken, resp.Token)
	if resp.User != nil {
		g.cacheProfile(sid, resp.User)
	}
	if err := setPersistentLogin(w, resp.Token, resp.User, g.cookieMaxAge); err != nil {
		g.log.Warn().Err(err).Msg("persistent cookie write failed")
	}

	return AuthResult{Success: true, Token: resp.Token, User: resp.User}
}

// Logout clears the session and expires the credential cookies. The token
// itself stays valid until natural expiry (stateless design).
func (g *Gateway) Logout(w http.ResponseWriter, r *http.Request) {
	sid := g.sessionID(w, r)
	g.sessions.Clear(sid)
	clearPersistentLogin(w)
	http.SetCookie(w, expiredCookie(SessionCookieName))
}

// SetSessionToken stores a token obtained out-of-band into the session.
func (g *Gateway) SetSessionToken(w http.ResponseWriter, r *http.Request, token string) {
	sid := g.sessionID(w, r)
	g.sessions.Set(sid, SlotToken, token)
}

// ClearSession drops the server-side session only.
func (g *Gateway) ClearSession(w http.ResponseWriter, r *http.Request) {
	g.sessions.Clear(g.sessionID(w, r))
}

// Rehydrate reconstructs the session from the persistent cookie pair when
// no session token exists. Returns true if the session became
// authenticated. Corrupted cookies are deleted and the request proceeds
// unauthenticated.
func (g *Gateway) Rehydrate(w http.ResponseWriter, r *http.Request) bool {
	sid := g.sessionID(w, r)

	if tok, ok := g.sessions.Get(sid, SlotToken); ok && tok != "" {
		return true
	}

	tok := readPersistentToken(r)
	if tok == "" {
		return false
	}

	profile, found, err := readPersistentUser(r)
	if err != nil {
		g.log.Warn().Err(err).Msg("corrupted persistent cookies during rehydration, clearing")
		clearPersistentLogin(w)
		return false
	}

	g.sessions.Set(sid, SlotToken, tok)
	if found {
		g.cacheProfile(sid, profile)
	}
	return true
}

func (g *Gateway) cacheProfile(sid string, profile *users.Profile) {
	serialized, err := json.Marshal(profile)
	if err != nil {
		return
	}
	g.sessions.Set(sid, SlotCurrentUser, string(serialized))
}

// sessionID returns the browser's session key, minting one (and setting the
// session cookie) on first contact. The minted ID is remembered in the
// request context so every lookup within the request shares it.
func (g *Gateway) sessionID(w http.ResponseWriter, r *http.Request) string {
	if sid, ok := SessionIDFromContext(r.Context()); ok {
		return sid
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	sid := session.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sid})
	return sid
}
