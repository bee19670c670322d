package web_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/api"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/users"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/web"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/web/session"
)

// fakeBackend counts calls so tests can assert which resolution path the
// gateway took.
type fakeBackend struct {
	loginCalls   int
	profileCalls int
	loginResp    *api.AuthResponse
	profile      *users.Profile
}

func (fb *fakeBackend) Login(_ context.Context, email, password string) (*api.AuthResponse, error) {
	fb.loginCalls++
	if fb.loginResp == nil {
		return nil, errors.New("no login response configured")
	}
	return fb.loginResp, nil
}

func (fb *fakeBackend) Register(_ context.Context, _ api.RegisterRequest) (*api.AuthResponse, error) {
	if fb.loginResp == nil {
		return nil, errors.New("no register response configured")
	}
	return fb.loginResp, nil
}

func (fb *fakeBackend) Profile(_ context.Context, token string) (*users.Profile, error) {
	fb.profileCalls++
	if fb.profile == nil {
		return nil, errors.New("unknown token")
	}
	return fb.profile, nil
}

func testProfile() *users.Profile {
	return &users.Profile{
		ID:        7,
		Email:     "rider@example.com",
		FirstName: "Giulia",
		LastName:  "Rossi",
		Role:      users.RoleStandard,
		Credit:    12.5,
		EcoPoints: 40,
	}
}

func newGatewayFixture(backend *fakeBackend) (*web.Gateway, *session.Store) {
	sessions := session.NewStore()
	gateway := web.NewGateway(sessions, backend, 30*24*time.Hour, zerolog.Nop())
	return gateway, sessions
}

// cookieRequest builds a request carrying only the given cookies, as a fresh
// browser visit would after the server session expired.
func cookieRequest(cookies ...*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/Dashboard", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func persistentCookiePair(t *testing.T, token string, profile *users.Profile) []*http.Cookie {
	t.Helper()
	serialized, err := json.Marshal(profile)
	require.NoError(t, err)
	return []*http.Cookie{
		{Name: web.PersistentTokenCookieName, Value: token},
		{Name: web.PersistentUserCookieName, Value: base64.URLEncoding.EncodeToString(serialized)},
	}
}

func responseCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestGateway_LoginPopulatesBothCaches(t *testing.T) {
	profile := testProfile()
	backend := &fakeBackend{
		loginResp: &api.AuthResponse{Success: true, Token: "signed-token", User: profile},
	}
	gateway, sessions := newGatewayFixture(backend)

	w := httptest.NewRecorder()
	r := cookieRequest()

	result := gateway.Login(w, r, profile.Email, "Str0ngPass!")
	require.True(t, result.Success)
	require.Equal(t, "signed-token", result.Token)

	// session slots
	sid := responseCookie(t, w, web.SessionCookieName)
	require.NotNil(t, sid)
	tok, ok := sessions.Get(sid.Value, web.SlotToken)
	require.True(t, ok)
	require.Equal(t, "signed-token", tok)
	cached, ok := sessions.Get(sid.Value, web.SlotCurrentUser)
	require.True(t, ok)
	require.Contains(t, cached, profile.Email)

	// persistent cookie pair
	tokenCookie := responseCookie(t, w, web.PersistentTokenCookieName)
	require.NotNil(t, tokenCookie)
	require.Equal(t, "signed-token", tokenCookie.Value)
	require.True(t, tokenCookie.HttpOnly)
	require.Equal(t, http.SameSiteStrictMode, tokenCookie.SameSite)
	require.Equal(t, int((30 * 24 * time.Hour).Seconds()), tokenCookie.MaxAge)
	require.NotNil(t, responseCookie(t, w, web.PersistentUserCookieName))
}

func TestGateway_LoginFailureChangesNothing(t *testing.T) {
	backend := &fakeBackend{
		loginResp: &api.AuthResponse{Success: false, Message: "incorrect email or password"},
	}
	gateway, _ := newGatewayFixture(backend)

	w := httptest.NewRecorder()
	result := gateway.Login(w, cookieRequest(), "rider@example.com", "wrong")
	require.False(t, result.Success)
	require.Equal(t, "incorrect email or password", result.Message)
	require.Nil(t, responseCookie(t, w, web.PersistentTokenCookieName))
	require.Nil(t, responseCookie(t, w, web.PersistentUserCookieName))
}

func TestGateway_PersistentCookiesSurviveSessionLoss(t *testing.T) {
	profile := testProfile()
	backend := &fakeBackend{}
	gateway, _ := newGatewayFixture(backend)

	// Fresh request with only the credential cookies, no server session.
	w := httptest.NewRecorder()
	r := cookieRequest(persistentCookiePair(t, "signed-token", profile)...)

	require.True(t, gateway.IsAuthenticated(w, r))

	got, ok := gateway.CurrentUser(w, r)
	require.True(t, ok)
	require.Equal(t, profile, got)

	// Both answers came from the cookies, never the backend.
	require.Zero(t, backend.profileCalls)
}

func TestGateway_CookieHitPromotedIntoSession(t *testing.T) {
	profile := testProfile()
	gateway, sessions := newGatewayFixture(&fakeBackend{})

	w := httptest.NewRecorder()
	r := cookieRequest(persistentCookiePair(t, "signed-token", profile)...)

	require.True(t, gateway.IsAuthenticated(w, r))

	sid := responseCookie(t, w, web.SessionCookieName)
	require.NotNil(t, sid)
	tok, ok := sessions.Get(sid.Value, web.SlotToken)
	require.True(t, ok)
	require.Equal(t, "signed-token", tok)

	// Second call resolves from the session slot alone.
	require.True(t, gateway.IsAuthenticated(w, r))
}

func TestGateway_CurrentUser_LiveFetchFallback(t *testing.T) {
	profile := testProfile()
	backend := &fakeBackend{profile: profile}
	gateway, _ := newGatewayFixture(backend)

	// Token cookie only, no profile cookie: forces the backend fetch.
	w := httptest.NewRecorder()
	r := cookieRequest(&http.Cookie{Name: web.PersistentTokenCookieName, Value: "signed-token"})

	got, ok := gateway.CurrentUser(w, r)
	require.True(t, ok)
	require.Equal(t, profile, got)
	require.Equal(t, 1, backend.profileCalls)

	// The fetched profile is written through to both caches.
	require.NotNil(t, responseCookie(t, w, web.PersistentUserCookieName))
	got, ok = gateway.CurrentUser(w, r)
	require.True(t, ok)
	require.Equal(t, profile, got)
	require.Equal(t, 1, backend.profileCalls)
}

func TestGateway_CorruptedUserCookieDeleted(t *testing.T) {
	gateway, _ := newGatewayFixture(&fakeBackend{})

	w := httptest.NewRecorder()
	r := cookieRequest(
		&http.Cookie{Name: web.PersistentTokenCookieName, Value: "signed-token"},
		&http.Cookie{Name: web.PersistentUserCookieName, Value: "%%%not-base64%%%"},
	)

	_, ok := gateway.CurrentUser(w, r)
	require.False(t, ok)

	// Both credential cookies get expired, and the request is not failed.
	tokenCookie := responseCookie(t, w, web.PersistentTokenCookieName)
	require.NotNil(t, tokenCookie)
	require.Equal(t, -1, tokenCookie.MaxAge)
	userCookie := responseCookie(t, w, web.PersistentUserCookieName)
	require.NotNil(t, userCookie)
	require.Equal(t, -1, userCookie.MaxAge)
}

func TestGateway_Rehydrate(t *testing.T) {
	profile := testProfile()
	gateway, sessions := newGatewayFixture(&fakeBackend{})

	w := httptest.NewRecorder()
	r := cookieRequest(persistentCookiePair(t, "signed-token", profile)...)

	require.True(t, gateway.Rehydrate(w, r))

	sid := responseCookie(t, w, web.SessionCookieName)
	require.NotNil(t, sid)
	tok, ok := sessions.Get(sid.Value, web.SlotToken)
	require.True(t, ok)
	require.Equal(t, "signed-token", tok)
	cached, ok := sessions.Get(sid.Value, web.SlotCurrentUser)
	require.True(t, ok)
	require.Contains(t, cached, profile.Email)
}

func TestGateway_Rehydrate_NoCookies(t *testing.T) {
	gateway, _ := newGatewayFixture(&fakeBackend{})
	require.False(t, gateway.Rehydrate(httptest.NewRecorder(), cookieRequest()))
}

func TestGateway_Rehydrate_CorruptedPair(t *testing.T) {
	gateway, _ := newGatewayFixture(&fakeBackend{})

	w := httptest.NewRecorder()
	r := cookieRequest(
		&http.Cookie{Name: web.PersistentTokenCookieName, Value: "signed-token"},
		&http.Cookie{Name: web.PersistentUserCookieName, Value: "not json at all"},
	)

	require.False(t, gateway.Rehydrate(w, r))
	tokenCookie := responseCookie(t, w, web.PersistentTokenCookieName)
	require.NotNil(t, tokenCookie)
	require.Equal(t, -1, tokenCookie.MaxAge)
}

func TestGateway_Logout(t *testing.T) {
	profile := testProfile()
	backend := &fakeBackend{
		loginResp: &api.AuthResponse{Success: true, Token: "signed-token", User: profile},
	}
	gateway, sessions := newGatewayFixture(backend)

	w := httptest.NewRecorder()
	r := cookieRequest()
	require.True(t, gateway.Login(w, r, profile.Email, "Str0ngPass!").Success)

	sid := responseCookie(t, w, web.SessionCookieName)
	require.NotNil(t, sid)

	w2 := httptest.NewRecorder()
	r2 := cookieRequest(&http.Cookie{Name: web.SessionCookieName, Value: sid.Value})
	gateway.Logout(w2, r2)

	_, ok := sessions.Get(sid.Value, web.SlotToken)
	require.False(t, ok)
	for _, name := range []string{web.PersistentTokenCookieName, web.PersistentUserCookieName, web.SessionCookieName} {
		cookie := responseCookie(t, w2, name)
		require.NotNil(t, cookie, name)
		require.Equal(t, -1, cookie.MaxAge, name)
	}
}
