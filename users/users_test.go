package users_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/users"
)

func TestHashPassword(t *testing.T) {
	hash, err := users.HashPassword("admin123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, "admin123", hash)

	require.True(t, users.CheckPasswordHash("admin123", hash))
	require.False(t, users.CheckPasswordHash("admin124", hash))
	require.False(t, users.CheckPasswordHash("", hash))
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := users.HashPassword("SamePassword1")
	require.NoError(t, err)
	second, err := users.HashPassword("SamePassword1")
	require.NoError(t, err)

	// bcrypt embeds a per-hash salt, so equal inputs produce distinct digests
	require.NotEqual(t, first, second)
	require.True(t, users.CheckPasswordHash("SamePassword1", first))
	require.True(t, users.CheckPasswordHash("SamePassword1", second))
}

func TestValidatePasswordStrength(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, users.ValidatePasswordStrength("Abcdef12"))
	})

	t.Run("too short", func(t *testing.T) {
		err := users.ValidatePasswordStrength("Ab1")
		require.Error(t, err)
		require.Contains(t, err.Error(), "8 characters")
	})

	t.Run("missing uppercase", func(t *testing.T) {
		require.Error(t, users.ValidatePasswordStrength("abcdef12"))
	})

	t.Run("missing lowercase", func(t *testing.T) {
		require.Error(t, users.ValidatePasswordStrength("ABCDEF12"))
	})

	t.Run("missing number", func(t *testing.T) {
		require.Error(t, users.ValidatePasswordStrength("Abcdefgh"))
	})
}

func TestProfileProjection(t *testing.T) {
	u := &users.User{
		ID:           7,
		Email:        "mario.rossi@example.com",
		PasswordHash: "never-exposed",
		FirstName:    "Mario",
		LastName:     "Rossi",
		Role:         users.RoleAdministrator,
		Credit:       30,
		EcoPoints:    12,
	}

	p := u.Profile()
	require.Equal(t, int64(7), p.ID)
	require.Equal(t, "Mario Rossi", p.FullName())
	require.True(t, p.IsAdministrator())
	require.Equal(t, 30.0, p.Credit)
	require.Equal(t, 12, p.EcoPoints)
}
