package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/api"
	fakeinvoicerepo "github.com/AyoubMahfoud/SharingMezzi-sub000/billing/repofake"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/internal/config"
	fakeparkingrepo "github.com/AyoubMahfoud/SharingMezzi-sub000/parkings/repofake"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/token"
	faketriprepo "github.com/AyoubMahfoud/SharingMezzi-sub000/trips/repofake"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/users"
	fakeuserrepo "github.com/AyoubMahfoud/SharingMezzi-sub000/users/repofake"
	fakevehiclerepo "github.com/AyoubMahfoud/SharingMezzi-sub000/vehicles/repofake"
)

const (
	adminEmail    = "admin@sharingmezzi.it"
	adminPassword = "admin123"
)

type serverFixture struct {
	server *api.Server
	users  *fakeuserrepo.FakeUserRepo
}

func setupServer(t *testing.T) *serverFixture {
	t.Helper()

	repos := api.Repos{
		Users:    fakeuserrepo.NewFakeUserRepo(),
		Vehicles: fakevehiclerepo.NewFakeVehicleRepo(),
		Parkings: fakeparkingrepo.NewFakeParkingRepo(),
		Trips:    faketriprepo.NewFakeTripRepo(),
		Invoices: fakeinvoicerepo.NewFakeInvoiceRepo(),
	}

	tokens := token.New(token.NewHMACSigner("test-secret"), "SharingMezzi", "SharingMezziUsers")

	server, err := api.New(config.New(), repos, tokens, zerolog.Nop())
	require.NoError(t, err)

	return &serverFixture{server: server, users: repos.Users.(*fakeuserrepo.FakeUserRepo)}
}

func postJSON(t *testing.T, server *api.Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, r)
	return w
}

func decodeAuthResponse(t *testing.T, w *httptest.ResponseRecorder) api.AuthResponse {
	t.Helper()

	var resp api.AuthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestLoginHandler_Success(t *testing.T) {
	f := setupServer(t)

	w := postJSON(t, f.server, "/api/auth/login", map[string]string{
		"email":    adminEmail,
		"password": adminPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeAuthResponse(t, w)
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)
	require.Empty(t, resp.RefreshToken)
	require.NotNil(t, resp.User)
	require.Equal(t, adminEmail, resp.User.Email)
	require.Equal(t, users.RoleAdministrator, resp.User.Role)
}

func TestLoginHandler_BadCredentials(t *testing.T) {
	f := setupServer(t)

	// Unknown email and wrong password must be indistinguishable.
	for name, creds := range map[string]map[string]string{
		"unknown email":  {"email": "nobody@example.com", "password": adminPassword},
		"wrong password": {"email": adminEmail, "password": "wrong"},
	} {
		t.Run(name, func(t *testing.T) {
			w := postJSON(t, f.server, "/api/auth/login", creds)
			require.Equal(t, http.StatusUnauthorized, w.Code)

			resp := decodeAuthResponse(t, w)
			require.False(t, resp.Success)
			require.Equal(t, "incorrect email or password", resp.Message)
			require.Empty(t, resp.Token)
			require.Nil(t, resp.User)
		})
	}
}

func TestLoginHandler_CaseInsensitiveEmail(t *testing.T) {
	f := setupServer(t)

	w := postJSON(t, f.server, "/api/auth/login", map[string]string{
		"email":    "Admin@SharingMezzi.IT",
		"password": adminPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, decodeAuthResponse(t, w).Success)
}

func TestRegisterHandler(t *testing.T) {
	f := setupServer(t)

	body := map[string]string{
		"email":     "giulia@example.com",
		"password":  "Str0ngPass!",
		"firstName": "Giulia",
		"lastName":  "Rossi",
	}

	w := postJSON(t, f.server, "/api/auth/register", body)
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeAuthResponse(t, w)
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, users.RoleStandard, resp.User.Role)

	// The stored digest is never the raw password.
	stored, err := f.users.GetByEmail(context.Background(), "giulia@example.com")
	require.NoError(t, err)
	require.NotEqual(t, "Str0ngPass!", stored.PasswordHash)
	require.True(t, users.CheckPasswordHash("Str0ngPass!", stored.PasswordHash))

	// Same email again is a conflict.
	w = postJSON(t, f.server, "/api/auth/register", body)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterHandler_WeakPassword(t *testing.T) {
	f := setupServer(t)

	w := postJSON(t, f.server, "/api/auth/register", map[string]string{
		"email":    "weak@example.com",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.False(t, decodeAuthResponse(t, w).Success)
}

func TestProfileHandler(t *testing.T) {
	f := setupServer(t)

	login := decodeAuthResponse(t, postJSON(t, f.server, "/api/auth/login", map[string]string{
		"email":    adminEmail,
		"password": adminPassword,
	}))
	require.True(t, login.Success)

	r := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	r.Header.Set("Authorization", "Bearer "+login.Token)
	w := httptest.NewRecorder()
	f.server.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var profile users.Profile
	require.NoError(t, json.NewDecoder(w.Body).Decode(&profile))
	require.Equal(t, adminEmail, profile.Email)
}

func TestProfileHandler_Unauthorized(t *testing.T) {
	f := setupServer(t)

	for name, authorize := range map[string]func(*http.Request){
		"no header":     func(r *http.Request) {},
		"garbage token": func(r *http.Request) { r.Header.Set("Authorization", "Bearer not-a-token") },
		"wrong scheme":  func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") },
	} {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
			authorize(r)
			w := httptest.NewRecorder()
			f.server.ServeHTTP(w, r)
			require.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
