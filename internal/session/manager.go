// Package session implements server-authoritative session tracking: an
// opaque token is handed to the client and mapped back to a user id on every
// request, so sessions can be revoked without trusting client-supplied claims.
package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL bounds sessions that never log out. The upstream design left
// session lifetime unbounded; seven days is the documented default here and
// can be overridden via SESSION_TTL_HOURS.
const DefaultTTL = 7 * 24 * time.Hour

// Manager issues, resolves, and revokes sessions. Tokens handed to clients
// are "<token>.<hmac>": the HMAC (keyed with the app secret) rejects forged
// or tampered cookies before any store lookup, while identity itself stays
// server-side only.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
}

// NewManager returns a Manager over the given store. A non-positive ttl
// falls back to DefaultTTL.
func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the session lifetime used for newly issued sessions.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a new session bound to userID and returns the signed token
// for the client cookie.
func (m *Manager) Issue(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()
	if err := m.store.Put(ctx, token, userID, m.ttl); err != nil {
		return "", err
	}
	return m.sign(token), nil
}

// Resolve maps a signed token to a user id. Invalid, forged, or expired
// tokens resolve to anonymous (ok == false); Resolve never fails.
func (m *Manager) Resolve(ctx context.Context, signed string) (uint, bool) {
	token, ok := m.verify(signed)
	if !ok {
		return 0, false
	}

	userID, found, err := m.store.Get(ctx, token)
	if err != nil || !found {
		return 0, false
	}
	return userID, true
}

// Revoke invalidates the session behind the signed token. Revoking an
// unknown or malformed token is a no-op success, so logout is idempotent.
func (m *Manager) Revoke(ctx context.Context, signed string) error {
	token, ok := m.verify(signed)
	if !ok {
		return nil
	}
	return m.store.Delete(ctx, token)
}

func (m *Manager) sign(token string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(token))
	return token + "." + hex.EncodeToString(mac.Sum(nil))
}

func (m *Manager) verify(signed string) (string, bool) {
	token, sig, ok := strings.Cut(signed, ".")
	if !ok || token == "" {
		return "", false
	}

	want, err := hex.DecodeString(sig)
	if err != nil {
		return "", false
	}

	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(token))
	if !hmac.Equal(mac.Sum(nil), want) {
		return "", false
	}
	return token, true
}
