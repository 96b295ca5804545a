package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/thenoetrevino/scope/internal/apperr"
)

// User is an account of the reference server. PasswordHash is a bcrypt hash
// and is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserRepo handles server accounts.
type UserRepo struct {
	db *sql.DB
}

const userColumns = `id, username, email, full_name, password_hash, created_at`

func scanUser(s scanner) (User, error) {
	var u User
	var created string
	if err := s.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash, &created); err != nil {
		return User{}, err
	}
	u.CreatedAt = parseTime(created)
	return u, nil
}

// CreateUser inserts u and returns it with its assigned ID.
func (r *UserRepo) CreateUser(ctx context.Context, u User) (User, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, email, full_name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.Username, u.Email, u.FullName, u.PasswordHash, formatTime(u.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, apperr.Newf(apperr.KindDuplicateKey, "username %s is taken", u.Username)
		}
		return User{}, classifyWrite(err, "user", u.Username)
	}
	if u.ID, err = res.LastInsertId(); err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *UserRepo) GetUser(ctx context.Context, id int64) (User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return User{}, classifyRead(err, "user", "")
	}
	return u, nil
}

func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if err != nil {
		return User{}, classifyRead(err, "user", username)
	}
	return u, nil
}
