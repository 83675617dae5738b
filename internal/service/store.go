package service

import (
	"context"

	"todo_api/internal/domain"

	"github.com/google/uuid"
)

// Store is the persistence the Todo facade works against. It is satisfied
// by repository.Repository for PostgreSQL and by storage.Collection for
// every whole-collection backend.
type Store interface {
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CreateUser(ctx context.Context, username string) (*domain.User, error)

	ListTasksByUser(ctx context.Context, userID uuid.UUID, filter domain.Filter) ([]domain.Task, error)
	FindTaskByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	DeleteTaskByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	CreateUserTask(ctx context.Context, nt domain.NewTask) (*domain.Task, error)
	EditUserTask(ctx context.Context, id uuid.UUID, row domain.TaskRow) (*domain.Task, error)

	FindProjectByName(ctx context.Context, userID uuid.UUID, name string) (*domain.Project, error)
	FindProjectByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	CreateProject(ctx context.Context, userID uuid.UUID, name string) (*domain.Project, error)
	ListProjectsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Project, error)
}
