// Package session issues and resolves opaque session tokens. Each token maps
// to a server-side snapshot of the identity's public fields; snapshots carry
// an expiry and can be revoked, so a leaked token has a bounded lifetime.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alumnihub/portal-server/internal/models"
	"github.com/alumnihub/portal-server/internal/store"
)

const keyPrefix = "session:"

// ErrNotFound is returned when a token does not resolve to a live session,
// whether it never existed, was revoked, or has expired.
var ErrNotFound = errors.New("session not found or expired")

// Manager creates, resolves and revokes sessions against the record store.
type Manager struct {
	store *store.Store
	ttl   time.Duration
	now   func() time.Time
}

// NewManager creates a session manager. Sessions live for ttl after issue.
func NewManager(st *store.Store, ttl time.Duration) *Manager {
	return &Manager{store: st, ttl: ttl, now: time.Now}
}

func sessionKey(token string) string {
	return keyPrefix + token
}

// Create issues a fresh opaque token for the user and stores the snapshot.
func (m *Manager) Create(ctx context.Context, user models.User) (string, models.Session, error) {
	snapshot := models.SnapshotUser(user)
	snapshot.IssuedAt = m.now().UTC()
	snapshot.ExpiresAt = snapshot.IssuedAt.Add(m.ttl)

	token := uuid.NewString()
	if err := m.put(ctx, token, snapshot); err != nil {
		return "", models.Session{}, err
	}
	return token, snapshot, nil
}

// Resolve looks up the snapshot for a token. Expired sessions are removed on
// the way out and reported as not found.
func (m *Manager) Resolve(ctx context.Context, token string) (models.Session, error) {
	raw, err := m.store.Get(ctx, sessionKey(token))
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return models.Session{}, ErrNotFound
		}
		return models.Session{}, fmt.Errorf("resolve session: %w", err)
	}

	var snapshot models.Session
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return models.Session{}, fmt.Errorf("decode session: %w", err)
	}

	if snapshot.Expired(m.now()) {
		_, _ = m.store.Delete(ctx, sessionKey(token))
		return models.Session{}, ErrNotFound
	}
	return snapshot, nil
}

// Refresh overwrites the snapshot for an existing token with the user's
// current fields. The issue and expiry times are preserved: refreshing keeps
// the snapshot honest without extending the token's lifetime.
func (m *Manager) Refresh(ctx context.Context, token string, user models.User) error {
	current, err := m.Resolve(ctx, token)
	if err != nil {
		return err
	}

	snapshot := models.SnapshotUser(user)
	snapshot.IssuedAt = current.IssuedAt
	snapshot.ExpiresAt = current.ExpiresAt
	return m.put(ctx, token, snapshot)
}

// Revoke deletes the session. Revoking an unknown token returns ErrNotFound.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if _, err := m.store.Delete(ctx, sessionKey(token)); err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// Sweep deletes all expired sessions and returns how many were removed.
func (m *Manager) Sweep(ctx context.Context) (int, error) {
	entries, err := m.store.ListByPrefix(ctx, keyPrefix)
	if err != nil {
		return 0, fmt.Errorf("scan sessions: %w", err)
	}

	now := m.now()
	removed := 0
	for _, entry := range entries {
		var snapshot models.Session
		if err := json.Unmarshal(entry.Value, &snapshot); err != nil {
			// An undecodable session is dead weight either way.
			_, _ = m.store.Delete(ctx, entry.Key)
			removed++
			continue
		}
		if snapshot.Expired(now) {
			if _, err := m.store.Delete(ctx, entry.Key); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}

func (m *Manager) put(ctx context.Context, token string, snapshot models.Session) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return m.store.Set(ctx, sessionKey(token), raw)
}
