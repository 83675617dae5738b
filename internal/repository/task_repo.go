package repository

import (
	"context"
	"errors"

	"todo_api/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	if err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.Done,
		&t.Deadline,
		&t.ProjectID,
		&t.CreatedAt,
		&t.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) queryTasks(ctx context.Context, sql string, args ...any) ([]domain.Task, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, readError(err)
	}
	defer rows.Close()

	res := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, readError(err)
		}
		res = append(res, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, readError(err)
	}
	return res, nil
}

// ListTasksByUser returns the live tasks of userID matching filter, newest
// first.
func (r *TaskRepository) ListTasksByUser(ctx context.Context, userID uuid.UUID, filter domain.Filter) ([]domain.Task, error) {
	sql, args := listTasksQuery(userID, filter)
	return r.queryTasks(ctx, sql, args...)
}

// ListTasksByUsername returns the live tasks of the live user username.
func (r *TaskRepository) ListTasksByUsername(ctx context.Context, username string) ([]domain.Task, error) {
	return r.queryTasks(ctx, listTasksByUsernameSQL, username)
}

func (r *TaskRepository) FindTaskByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	t, err := scanTask(r.db.QueryRow(ctx, findTaskByIDSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, readError(err)
	}
	return t, nil
}

// DeleteTaskByID tombstones the task and returns its pre-deletion state.
func (r *TaskRepository) DeleteTaskByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	t, err := scanTask(r.db.QueryRow(ctx, deleteTaskByIDSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, writeError(err)
	}
	return t, nil
}

func (r *TaskRepository) CreateUserTask(ctx context.Context, nt domain.NewTask) (*domain.Task, error) {
	t, err := scanTask(r.db.QueryRow(ctx, createTaskSQL,
		nt.UserID,
		nt.Title,
		nt.Description,
		nt.Done,
		nt.Deadline,
		nt.ProjectID,
	))
	if err != nil {
		return nil, writeError(err)
	}
	return t, nil
}

// EditUserTask overwrites every mutable column of the live task id.
func (r *TaskRepository) EditUserTask(ctx context.Context, id uuid.UUID, row domain.TaskRow) (*domain.Task, error) {
	t, err := scanTask(r.db.QueryRow(ctx, editTaskSQL,
		id,
		row.Title,
		row.Description,
		row.Deadline,
		row.Done,
		row.ProjectID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, writeError(err)
	}
	return t, nil
}
