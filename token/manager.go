// Package token issues and verifies the signed identity assertions the
// service uses for authentication. Tokens are self-contained: verification
// needs only the signing secret, no store lookup. There is deliberately no
// revocation list, so logout removes client-held copies but an already
// captured token stays valid until its natural expiry.
package token

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/users"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed structure, expiry. Callers treat all of them as "no token".
var ErrInvalidToken = errors.New("invalid token")

const defaultTokenExpiry = time.Hour

// Claims is the verified content of an identity assertion.
type Claims struct {
	Subject   int64
	Name      string
	Email     string
	Role      users.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Manager creates and validates tokens with a single process-wide signer.
type Manager struct {
	signer   Signer
	issuer   string
	audience string
	expiry   time.Duration
	nowFunc  func() time.Time
}

type ManagerOption func(*Manager)

// WithExpiry overrides the default one-hour token lifetime.
func WithExpiry(expiry time.Duration) ManagerOption {
	return func(m *Manager) {
		m.expiry = expiry
	}
}

// WithNowFunc sets the clock (primarily for testing)
func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

func New(signer Signer, issuer, audience string, options ...ManagerOption) *Manager {
	m := &Manager{
		signer:   signer,
		issuer:   issuer,
		audience: audience,
		expiry:   defaultTokenExpiry,
		nowFunc:  time.Now,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// Issue creates a signed token for the user with a one-hour expiry.
func (m *Manager) Issue(user *users.User) (string, error) {
	now := m.nowFunc()
	claims := jwt.MapClaims{
		"iss":   m.issuer,
		"aud":   m.audience,
		"sub":   user.SubjectID(),
		"name":  user.FullName(),
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(m.expiry).Unix(),
		"jti":   uuid.New().String(),
	}

	signed, err := m.signer.Sign(claims)
	if err != nil {
		return "", errors.Wrap(err, "[Manager.Issue] signer.Sign")
	}
	return signed, nil
}

// Verify parses the raw token, checks the signature against the current
// secret and rejects anything expired or malformed. On success it returns
// the embedded claims; no further lookup is required.
func (m *Manager) Verify(raw string) (*Claims, error) {
	parsed, err := jwt.Parse(raw, m.signer.GetVerificationKey)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := mapClaims["sub"].(string)
	subjectID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	name, _ := mapClaims["name"].(string)
	email, _ := mapClaims["email"].(string)
	role, _ := mapClaims["role"].(string)
	iat, _ := mapClaims["iat"].(float64)
	exp, _ := mapClaims["exp"].(float64)

	expiresAt := time.Unix(int64(exp), 0)
	if !m.nowFunc().Before(expiresAt) {
		return nil, ErrInvalidToken
	}

	return &Claims{
		Subject:   subjectID,
		Name:      name,
		Email:     email,
		Role:      users.Role(role),
		IssuedAt:  time.Unix(int64(iat), 0),
		ExpiresAt: expiresAt,
	}, nil
}
