package sqlite

import (
	"context"
	"time"

	"github.com/heartbeatcoders/recruit/internal/recruit/domain"
)

type sessionsRepo struct {
	db dbtx
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, token_hash, user_id, expires_at, revoked, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.TokenHash, s.UserID, s.ExpiresAt, s.Revoked, s.CreatedAt,
	)
	return mapConflict(err)
}

func (r *sessionsRepo) GetLiveSessionByTokenHash(ctx context.Context, hash string) (domain.Session, error) {
	var s domain.Session
	err := r.db.QueryRowContext(ctx,
		`SELECT id, token_hash, user_id, expires_at, revoked, created_at
		 FROM sessions
		 WHERE token_hash = ? AND revoked = 0 AND expires_at > ?`,
		hash, time.Now().UTC(),
	).Scan(&s.ID, &s.TokenHash, &s.UserID, &s.ExpiresAt, &s.Revoked, &s.CreatedAt)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return s, nil
}

func (r *sessionsRepo) RevokeSession(ctx context.Context, hash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET revoked = 1 WHERE token_hash = ?`, hash)
	return err
}

func (r *sessionsRepo) RevokeAllUserSessions(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET revoked = 1 WHERE user_id = ?`, userID)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at <= ? OR revoked = 1`, time.Now().UTC())
	return err
}
