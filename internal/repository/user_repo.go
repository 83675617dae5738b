package repository

import (
	"context"
	"errors"

	"todo_api/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.CreatedAt, &u.DeletedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindUserByUsername returns the live user with username, or nil.
func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, findUserByUsernameSQL, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, readError(err)
	}
	return u, nil
}

// CreateUser inserts username, or clears the tombstone of an existing user
// with that name so it comes back with its original id.
func (r *UserRepository) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, createUserSQL, username))
	if err != nil {
		return nil, writeError(err)
	}
	return u, nil
}

// DeleteUser soft-deletes the user and returns it as it was before, or nil
// when no live user has id.
func (r *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, deleteUserSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, writeError(err)
	}
	return u, nil
}
