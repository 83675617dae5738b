// Package repository is the PostgreSQL data access layer. Every operation is
// a single parametrized statement; absent rows are reported as a nil entity
// and any other failure is wrapped as a domain storage error.
package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository groups the user, task and project repositories over one pool.
type Repository struct {
	*UserRepository
	*TaskRepository
	*ProjectRepository
}

func New(db *pgxpool.Pool) *Repository {
	return &Repository{
		UserRepository:    NewUserRepository(db),
		TaskRepository:    NewTaskRepository(db),
		ProjectRepository: NewProjectRepository(db),
	}
}
