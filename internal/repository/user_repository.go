package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/okandemir/vault-api/internal/model"
)

// UserStore is the credential store: a durable mapping from username
// to password hash and role. Handlers depend on this interface so
// tests can substitute the in-memory implementation.
type UserStore interface {
	// Create inserts a user and returns its id. A username collision
	// yields ErrDuplicateUser.
	Create(ctx context.Context, username, passwordHash, role string) (uint64, error)
	// GetByUsername fetches a user; a miss yields ErrNotFound.
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

// UserRepo is the MySQL-backed UserStore.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// mysqlDupEntry reports whether err is a MySQL 1062 duplicate-key error.
func mysqlDupEntry(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	// Driver versions that wrap differently still mention the code.
	return strings.Contains(err.Error(), "1062")
}

// Create inserts a user and returns its id. Uniqueness is enforced by
// the UNIQUE index on users.username.
func (r *UserRepo) Create(ctx context.Context, username, passwordHash, role string) (uint64, error) {
	if role == "" {
		role = model.RoleUser
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, role) VALUES (?,?,?)",
		username, passwordHash, role)
	if err != nil {
		if mysqlDupEntry(err) {
			return 0, ErrDuplicateUser
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,role FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}
