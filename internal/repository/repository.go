package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository provides database operations.
// Every operation runs on its own connection taken from db and released
// before the operation returns.
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// withConn acquires one connection for the duration of fn and releases it on
// every exit path.
func (r *Repository) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}
