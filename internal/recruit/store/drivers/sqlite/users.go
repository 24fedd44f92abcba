package sqlite

import (
	"context"
	"database/sql"

	"github.com/heartbeatcoders/recruit/internal/recruit/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, first_name, last_name, email, phone, password_hash, role, is_active, created_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, first_name, last_name, email, phone, password_hash, role, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.FirstName, u.LastName, u.Email, mapStringNull(u.Phone),
		u.PasswordHash, string(u.Role), u.IsActive, u.CreatedAt,
	)
	return mapConflict(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`, newHash, userID)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

func (r *usersRepo) SetActive(ctx context.Context, userID string, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_active = ? WHERE id = ?`, active, userID)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (domain.User, error) {
	var (
		u     domain.User
		phone sql.NullString
		role  string
	)
	err := s.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &phone,
		&u.PasswordHash, &role, &u.IsActive, &u.CreatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Phone = mapNullString(phone)
	u.Role = domain.Role(role)
	return u, nil
}

// requireRowChanged turns a zero-row update into ErrNotFound so writes
// against missing ids surface instead of silently succeeding.
func requireRowChanged(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}
