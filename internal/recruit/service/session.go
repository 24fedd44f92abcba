package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/heartbeatcoders/recruit/internal/recruit/domain"
	"github.com/heartbeatcoders/recruit/internal/recruit/store"
	"github.com/heartbeatcoders/recruit/pkg/cryptox"
	"github.com/heartbeatcoders/recruit/pkg/idx"
	"github.com/heartbeatcoders/recruit/pkg/slogx"
)

// DefaultSessionTTL is how long a login session lasts unless configured.
const DefaultSessionTTL = 24 * time.Hour

// SessionService mints, resolves and revokes login sessions.
type SessionService struct {
	Store store.Store
	TTL   time.Duration
}

// Issue mints a session for a user. The returned token is handed to the
// client exactly once; only its fingerprint is persisted.
func (s *SessionService) Issue(ctx context.Context, u domain.User) (string, domain.Session, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", domain.Session{}, fmt.Errorf("issue session: %w", err)
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	now := time.Now().UTC()
	sess := domain.Session{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(token),
		UserID:    u.ID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	if err := s.Store.Sessions().CreateSession(ctx, sess); err != nil {
		return "", domain.Session{}, fmt.Errorf("issue session: %w", err)
	}

	return token, sess, nil
}

// Resolve maps a session token to an acting identity. This is the one-shot
// per-request transition from unresolved to guest-or-authenticated: a
// missing, malformed, expired or revoked token and a deactivated account all
// degrade to guest. It never returns an error; unexpected store failures are
// logged and still resolve to guest rather than failing the request.
func (s *SessionService) Resolve(ctx context.Context, token string) domain.Identity {
	if token == "" {
		return domain.Guest()
	}

	sess, err := s.Store.Sessions().GetLiveSessionByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slogx.FromContext(ctx).Warn("session lookup failed, degrading to guest", "error", err)
		}
		return domain.Guest()
	}

	u, err := s.Store.Users().GetUserByID(ctx, sess.UserID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slogx.FromContext(ctx).Warn("session user lookup failed, degrading to guest", "error", err)
		}
		return domain.Guest()
	}

	// Deactivated accounts resolve fully to guest, not to some restricted
	// authenticated state. The stale session is left to expire on its own.
	if !u.IsActive || !u.Role.Valid() {
		return domain.Guest()
	}

	return domain.Authenticated(u.ID, u.Role)
}

// Revoke invalidates the session belonging to a token, e.g. on logout.
// Unknown tokens are a no-op.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Store.Sessions().RevokeSession(ctx, cryptox.FingerprintToken(token))
}

// DeleteExpired removes dead session rows. Called by housekeeping.
func (s *SessionService) DeleteExpired(ctx context.Context) error {
	return s.Store.Sessions().DeleteExpiredSessions(ctx)
}
