package storage

import (
	"context"
	"errors"

	"todo_api/internal/domain"
)

// TaskLister lists the live tasks of a live user.
type TaskLister interface {
	ListTasksByUsername(ctx context.Context, username string) ([]domain.Task, error)
}

// DB exposes the tasks of one user kept in the relational database. Durable
// mutation goes through the repository's task operations, so Write is not
// supported.
type DB struct {
	repo     TaskLister
	username string
}

// NewDB returns a database-backed view of username's tasks.
func NewDB(repo TaskLister, username string) *DB {
	return &DB{repo: repo, username: username}
}

func (s *DB) Read(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.repo.ListTasksByUsername(ctx, s.username)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func (s *DB) Write(_ context.Context, _ []domain.Task) error {
	return domain.WriteFailure("collection replacement is not supported by database storage", errors.ErrUnsupported)
}
