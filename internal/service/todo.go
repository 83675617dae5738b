package service

import (
	"context"
	"fmt"
	"strings"

	"todo_api/internal/domain"

	"github.com/google/uuid"
)

// Todo is the task list of one user. The user is resolved once, when the
// Todo is built, and every operation is scoped to it.
type Todo struct {
	store Store
	user  domain.User
}

// NewTodo resolves username in store. An unknown user is created when
// allowCreate is set, which also brings back a soft-deleted user of the same
// name; otherwise domain.ErrNotFound is returned.
func NewTodo(ctx context.Context, store Store, username string, allowCreate bool) (*Todo, error) {
	if strings.TrimSpace(username) == "" {
		return nil, domain.Validationf("username must not be empty")
	}

	u, err := store.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		if !allowCreate {
			return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
		}
		if u, err = store.CreateUser(ctx, username); err != nil {
			return nil, err
		}
	}
	return &Todo{store: store, user: *u}, nil
}

func (t *Todo) User() domain.User {
	return t.user
}

func (t *Todo) ListTasks(ctx context.Context, filter domain.Filter) ([]domain.Task, error) {
	return t.store.ListTasksByUser(ctx, t.user.ID, filter)
}

// FindTask returns the task with id, or nil when it does not exist or
// belongs to another user.
func (t *Todo) FindTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := t.store.FindTaskByID(ctx, id)
	if err != nil || task == nil {
		return nil, err
	}
	if task.UserID != t.user.ID {
		return nil, nil
	}
	return task, nil
}

// CreateTask persists a new task titled title. Attributes left unset take
// their defaults; attrs.Title is ignored.
func (t *Todo) CreateTask(ctx context.Context, title string, attrs domain.TaskAttributes) (*domain.Task, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	row := attrs.Apply(domain.TaskRow{Title: title})
	row.Title = title
	row.Description = blankToNil(row.Description)
	if err := t.checkProject(ctx, row.ProjectID); err != nil {
		return nil, err
	}

	return t.store.CreateUserTask(ctx, domain.NewTask{
		UserID:      t.user.ID,
		Title:       row.Title,
		Description: row.Description,
		Done:        row.Done,
		Deadline:    row.Deadline,
		ProjectID:   row.ProjectID,
	})
}

// EditTask applies the supplied attributes on top of the stored task and
// writes the full row back. It returns nil when the task is not visible.
func (t *Todo) EditTask(ctx context.Context, id uuid.UUID, attrs domain.TaskAttributes) (*domain.Task, error) {
	current, err := t.FindTask(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}

	if attrs.Title.Set {
		if err := validateTitle(attrs.Title.Value); err != nil {
			return nil, err
		}
	}
	if attrs.ProjectID.Set {
		if err := t.checkProject(ctx, attrs.ProjectID.Value); err != nil {
			return nil, err
		}
	}

	row := attrs.Apply(current.Row())
	row.Description = blankToNil(row.Description)
	return t.store.EditUserTask(ctx, id, row)
}

// DeleteTask tombstones the task and returns it as it was before deletion,
// or nil when it is not visible.
func (t *Todo) DeleteTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	current, err := t.FindTask(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}
	return t.store.DeleteTaskByID(ctx, current.ID)
}

func (t *Todo) FindProjectByName(ctx context.Context, name string) (*domain.Project, error) {
	return t.store.FindProjectByName(ctx, t.user.ID, name)
}

func (t *Todo) CreateProject(ctx context.Context, name string) (*domain.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.Validationf("project name must not be empty")
	}
	return t.store.CreateProject(ctx, t.user.ID, name)
}

func (t *Todo) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return t.store.ListProjectsByUser(ctx, t.user.ID)
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return domain.Validationf("title must not be empty")
	}
	return nil
}

// blankToNil stores an empty description as no description, so every
// backend reads it back the same way.
func blankToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// checkProject rejects a project id that is not a live project of the user.
func (t *Todo) checkProject(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	p, err := t.store.FindProjectByID(ctx, *id)
	if err != nil {
		return err
	}
	if p == nil || p.UserID != t.user.ID {
		return domain.Validationf("project %s does not exist", id)
	}
	return nil
}
