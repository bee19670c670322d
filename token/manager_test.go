package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/token"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/users"
)

const (
	secretStr = "test-secret-1234"
	issuer    = "SharingMezzi"
	audience  = "SharingMezziUsers"
)

func testUser() *users.User {
	return &users.User{
		ID:        42,
		Email:     "john.doe@example.com",
		FirstName: "John",
		LastName:  "Doe",
		Role:      users.RoleStandard,
		Credit:    12.5,
	}
}

func TestIssueAndVerify(t *testing.T) {
	m := token.New(token.NewHMACSigner(secretStr), issuer, audience)

	signed, err := m.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.Subject)
	require.Equal(t, "John Doe", claims.Name)
	require.Equal(t, "john.doe@example.com", claims.Email)
	require.Equal(t, users.RoleStandard, claims.Role)
	require.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt))
}

func TestVerify_Expired(t *testing.T) {
	issuedAt := time.Now()
	clock := issuedAt

	m := token.New(token.NewHMACSigner(secretStr), issuer, audience,
		token.WithNowFunc(func() time.Time { return clock }))

	signed, err := m.Issue(testUser())
	require.NoError(t, err)

	t.Run("valid just before expiry", func(t *testing.T) {
		clock = issuedAt.Add(time.Hour - time.Second)
		claims, err := m.Verify(signed)
		require.NoError(t, err)
		require.Equal(t, int64(42), claims.Subject)
	})

	t.Run("invalid at expiry", func(t *testing.T) {
		clock = issuedAt.Add(time.Hour)
		_, err := m.Verify(signed)
		require.ErrorIs(t, err, token.ErrInvalidToken)
	})
}

func TestVerify_WrongSecret(t *testing.T) {
	m := token.New(token.NewHMACSigner(secretStr), issuer, audience)
	other := token.New(token.NewHMACSigner("another-secret"), issuer, audience)

	signed, err := m.Issue(testUser())
	require.NoError(t, err)

	_, err = other.Verify(signed)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	m := token.New(token.NewHMACSigner(secretStr), issuer, audience)

	for _, raw := range []string{"", "garbage", "a.b.c", "header.payload"} {
		_, err := m.Verify(raw)
		require.ErrorIs(t, err, token.ErrInvalidToken)
	}
}

func TestVerify_Tampered(t *testing.T) {
	m := token.New(token.NewHMACSigner(secretStr), issuer, audience)

	signed, err := m.Issue(testUser())
	require.NoError(t, err)

	tampered := signed[:len(signed)-2] + "xx"
	_, err = m.Verify(tampered)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestWithExpiry(t *testing.T) {
	m := token.New(token.NewHMACSigner(secretStr), issuer, audience,
		token.WithExpiry(15*time.Minute))

	signed, err := m.Issue(testUser())
	require.NoError(t, err)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, 15*time.Minute, claims.ExpiresAt.Sub(claims.IssuedAt))
}
