package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/web/session"
)

func TestStore_SetGetRemoveClear(t *testing.T) {
	s := session.NewStore()
	sid := session.NewID()

	_, ok := s.Get(sid, "token")
	require.False(t, ok)

	s.Set(sid, "token", "abc")
	s.Set(sid, "currentUserJson", `{"id":1}`)

	value, ok := s.Get(sid, "token")
	require.True(t, ok)
	require.Equal(t, "abc", value)

	s.Remove(sid, "token")
	_, ok = s.Get(sid, "token")
	require.False(t, ok)

	// other slot survives a single removal
	value, ok = s.Get(sid, "currentUserJson")
	require.True(t, ok)
	require.Equal(t, `{"id":1}`, value)

	s.Clear(sid)
	_, ok = s.Get(sid, "currentUserJson")
	require.False(t, ok)
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	s := session.NewStore()
	first := session.NewID()
	second := session.NewID()

	s.Set(first, "token", "abc")
	_, ok := s.Get(second, "token")
	require.False(t, ok)
}

func TestStore_IdleTimeout(t *testing.T) {
	start := time.Now()
	clock := start

	s := session.NewStore(
		session.WithIdleTimeout(30*time.Minute),
		session.WithNowFunc(func() time.Time { return clock }),
	)
	sid := session.NewID()
	s.Set(sid, "token", "abc")

	// activity keeps the session alive past the original deadline
	clock = start.Add(20 * time.Minute)
	_, ok := s.Get(sid, "token")
	require.True(t, ok)

	clock = start.Add(45 * time.Minute)
	_, ok = s.Get(sid, "token")
	require.True(t, ok)

	// half an hour of silence evicts it
	clock = start.Add(45*time.Minute + 31*time.Minute)
	_, ok = s.Get(sid, "token")
	require.False(t, ok)
}

func TestStore_Sweep(t *testing.T) {
	start := time.Now()
	clock := start

	s := session.NewStore(
		session.WithIdleTimeout(30*time.Minute),
		session.WithNowFunc(func() time.Time { return clock }),
	)

	stale := session.NewID()
	fresh := session.NewID()
	s.Set(stale, "token", "old")

	clock = start.Add(31 * time.Minute)
	s.Set(fresh, "token", "new")
	s.Sweep()

	_, ok := s.Get(stale, "token")
	require.False(t, ok)
	value, ok := s.Get(fresh, "token")
	require.True(t, ok)
	require.Equal(t, "new", value)
}
