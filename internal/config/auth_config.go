package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
)

// devFallbackSecret is only acceptable for local runs. Outside DEV a missing
// AUTH_SECRET fails startup instead of silently signing with a known value.
const devFallbackSecret = "sharingmezzi-dev-secret"

type AuthConfig interface {
	GetAuthSecret() (string, error)
	GetAuthIssuer() string
	GetAuthAudience() string
	GetTokenExpiry() time.Duration
	GetSessionIdleTimeout() time.Duration
	GetPersistentCookieMaxAge() time.Duration
}

type Auth struct{}

var _ AuthConfig = Auth{}

func (Auth) GetAuthSecret() (string, error) {
	secret := os.Getenv("AUTH_SECRET")
	if secret != "" {
		return secret, nil
	}
	if (EnvVars{}).GetEnv() != "DEV" {
		return "", errors.New("AUTH_SECRET must be set outside DEV")
	}
	return devFallbackSecret, nil
}

func (Auth) GetAuthIssuer() string {
	return GetEnv("AUTH_ISSUER", "SharingMezzi")
}

func (Auth) GetAuthAudience() string {
	return GetEnv("AUTH_AUDIENCE", "SharingMezziUsers")
}

func (Auth) GetTokenExpiry() time.Duration {
	return 1 * time.Hour
}

func (Auth) GetSessionIdleTimeout() time.Duration {
	return 30 * time.Minute // Sessions expire after 30 minutes of inactivity
}

func (Auth) GetPersistentCookieMaxAge() time.Duration {
	return 30 * 24 * time.Hour
}
