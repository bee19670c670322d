package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/users"
)

// Profile JSON is base64-encoded so the cookie value stays within the
// characters RFC 6265 allows.
func encodeCookieValue(raw []byte) string {
	return base64.URLEncoding.EncodeToString(raw)
}

func decodeCookieValue(value string) ([]byte, error) {
	return base64.URLEncoding.DecodeString(value)
}

// Cookie names
const (
	// SessionCookieName carries the opaque server-session key.
	SessionCookieName = "sharingmezzi_session"
	// PersistentTokenCookieName holds the signed token for 30 days.
	PersistentTokenCookieName = "PersistentToken"
	// PersistentUserCookieName holds the serialized profile for 30 days.
	PersistentUserCookieName = "PersistentUser"
)

// Deployment assumption is local/HTTP, so the cookies are not marked Secure.
func persistentCookie(name, value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

func expiredCookie(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// setPersistentLogin writes the long-lived credential cookie pair.
func setPersistentLogin(w http.ResponseWriter, token string, profile *users.Profile, maxAge time.Duration) error {
	serialized, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	http.SetCookie(w, persistentCookie(PersistentTokenCookieName, token, maxAge))
	http.SetCookie(w, persistentCookie(PersistentUserCookieName, encodeCookieValue(serialized), maxAge))
	return nil
}

// clearPersistentLogin expires both credential cookies.
func clearPersistentLogin(w http.ResponseWriter) {
	http.SetCookie(w, expiredCookie(PersistentTokenCookieName))
	http.SetCookie(w, expiredCookie(PersistentUserCookieName))
}

func readPersistentToken(r *http.Request) string {
	cookie, err := r.Cookie(PersistentTokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// readPersistentUser deserializes the profile cookie. The second return is
// false for a missing cookie; err is non-nil only for a corrupted one.
func readPersistentUser(r *http.Request) (*users.Profile, bool, error) {
	cookie, err := r.Cookie(PersistentUserCookieName)
	if err != nil || cookie.Value == "" {
		return nil, false, nil
	}

	raw, err := decodeCookieValue(cookie.Value)
	if err != nil {
		return nil, false, err
	}

	var profile users.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, false, err
	}
	return &profile, true, nil
}
