package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisManager(t *testing.T, secret string, ttl time.Duration) (*Manager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewManager(NewRedisStore(client), secret, ttl), mr
}

func TestIssueAndResolve(t *testing.T) {
	m, _ := newRedisManager(t, "test-secret", time.Hour)
	ctx := context.Background()

	token, err := m.Issue(ctx, 42)
	require.NoError(t, err)
	assert.Contains(t, token, ".")

	userID, ok := m.Resolve(ctx, token)
	assert.True(t, ok)
	assert.Equal(t, uint(42), userID)
}

func TestResolveAnonymous(t *testing.T) {
	m, _ := newRedisManager(t, "test-secret", time.Hour)
	ctx := context.Background()

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"no signature", "just-a-token"},
		{"garbage signature", "some-token.nothex"},
		{"unknown but well-formed", "unknown.0000000000000000000000000000000000000000000000000000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, ok := m.Resolve(ctx, tt.token)
			assert.False(t, ok)
			assert.Zero(t, userID)
		})
	}
}

func TestResolveRejectsTampering(t *testing.T) {
	m, _ := newRedisManager(t, "test-secret", time.Hour)
	ctx := context.Background()

	token, err := m.Issue(ctx, 7)
	require.NoError(t, err)

	// Swap the uuid portion while keeping the valid signature.
	_, sig, found := strings.Cut(token, ".")
	require.True(t, found)

	_, ok := m.Resolve(ctx, "forged-token."+sig)
	assert.False(t, ok)
}

func TestResolveRejectsWrongSecret(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client)
	issuer := NewManager(store, "secret-one", time.Hour)
	verifier := NewManager(store, "secret-two", time.Hour)
	ctx := context.Background()

	token, err := issuer.Issue(ctx, 7)
	require.NoError(t, err)

	_, ok := verifier.Resolve(ctx, token)
	assert.False(t, ok)
}

func TestSessionExpiry(t *testing.T) {
	m, mr := newRedisManager(t, "test-secret", time.Minute)
	ctx := context.Background()

	token, err := m.Issue(ctx, 42)
	require.NoError(t, err)

	_, ok := m.Resolve(ctx, token)
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)

	_, ok = m.Resolve(ctx, token)
	assert.False(t, ok)
}

func TestRevoke(t *testing.T) {
	m, _ := newRedisManager(t, "test-secret", time.Hour)
	ctx := context.Background()

	token, err := m.Issue(ctx, 42)
	require.NoError(t, err)

	require.NoError(t, m.Revoke(ctx, token))

	_, ok := m.Resolve(ctx, token)
	assert.False(t, ok)

	// Revoking again, or revoking junk, still succeeds.
	assert.NoError(t, m.Revoke(ctx, token))
	assert.NoError(t, m.Revoke(ctx, ""))
	assert.NoError(t, m.Revoke(ctx, "garbage.ffff"))
}

func TestSessionsAreIndependent(t *testing.T) {
	m, _ := newRedisManager(t, "test-secret", time.Hour)
	ctx := context.Background()

	first, err := m.Issue(ctx, 1)
	require.NoError(t, err)
	second, err := m.Issue(ctx, 1)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	require.NoError(t, m.Revoke(ctx, first))

	// The same account's other session survives.
	userID, ok := m.Resolve(ctx, second)
	assert.True(t, ok)
	assert.Equal(t, uint(1), userID)
}

func TestDefaultTTLFallback(t *testing.T) {
	m := NewManager(NewMemoryStore(), "test-secret", 0)
	assert.Equal(t, DefaultTTL, m.TTL())

	m = NewManager(NewMemoryStore(), "test-secret", time.Hour)
	assert.Equal(t, time.Hour, m.TTL())
}

func TestMemoryStoreExpiry(t *testing.T) {
	now := time.Now()
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	m := NewManager(store, "test-secret", time.Minute)
	ctx := context.Background()

	token, err := m.Issue(ctx, 9)
	require.NoError(t, err)

	userID, ok := m.Resolve(ctx, token)
	require.True(t, ok)
	assert.Equal(t, uint(9), userID)

	now = now.Add(2 * time.Minute)

	_, ok = m.Resolve(ctx, token)
	assert.False(t, ok)
}

func TestMemoryStoreSweep(t *testing.T) {
	now := time.Now()
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "stale", 1, time.Minute))
	now = now.Add(2 * time.Minute)
	require.NoError(t, store.Put(ctx, "fresh", 2, time.Minute))

	store.mu.RLock()
	_, staleKept := store.sessions["stale"]
	_, freshKept := store.sessions["fresh"]
	store.mu.RUnlock()

	assert.False(t, staleKept)
	assert.True(t, freshKept)
}
