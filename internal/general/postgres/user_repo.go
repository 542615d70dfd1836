package postgres

import (
	"context"
	"errors"
	"fmt"

	"move-market/internal/domain/user"
	"move-market/internal/ports"

	"github.com/jackc/pgx/v5"
)

// UserRepo persists users using pgx and plain SQL.
type UserRepo struct{}

// NewUserRepo constructs a new UserRepo.
func NewUserRepo() ports.UserRepository {
	return &UserRepo{}
}

// CreateUser inserts a new user row.
func (repo *UserRepo) CreateUser(ctx context.Context, u *user.User) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, name, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Name, u.Role.String(),
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID fetches a user by primary key. Returns (nil, nil) when absent.
func (repo *UserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var out user.User
	var role string

	err = tx.QueryRow(ctx, `
		SELECT id, email, name, role, deleted_at, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).Scan(&out.ID, &out.Email, &out.Name, &role, &out.DeletedAt, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	out.Role = user.Role(role)

	return &out, nil
}
