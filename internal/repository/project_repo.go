package repository

import (
	"context"
	"errors"

	"todo_api/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.CreatedAt, &p.DeletedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) findProject(ctx context.Context, sql string, args ...any) (*domain.Project, error) {
	p, err := scanProject(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, readError(err)
	}
	return p, nil
}

func (r *ProjectRepository) FindProjectByName(ctx context.Context, userID uuid.UUID, name string) (*domain.Project, error) {
	return r.findProject(ctx, findProjectByNameSQL, userID, name)
}

func (r *ProjectRepository) FindProjectByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return r.findProject(ctx, findProjectByIDSQL, id)
}

// CreateProject inserts the project or resurrects a deleted one of the same
// name for userID.
func (r *ProjectRepository) CreateProject(ctx context.Context, userID uuid.UUID, name string) (*domain.Project, error) {
	p, err := scanProject(r.db.QueryRow(ctx, createProjectSQL, userID, name))
	if err != nil {
		return nil, writeError(err)
	}
	return p, nil
}

func (r *ProjectRepository) ListProjectsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Project, error) {
	rows, err := r.db.Query(ctx, listProjectsSQL, userID)
	if err != nil {
		return nil, readError(err)
	}
	defer rows.Close()

	res := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, readError(err)
		}
		res = append(res, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, readError(err)
	}
	return res, nil
}
