package repository

import (
	"strings"

	"todo_api/internal/domain"

	"github.com/google/uuid"
)

// Column lists shared by every statement. Task columns follow the stable
// field order of domain.TaskFields.
var (
	userColumns    = "id, username, created_at, deleted_at"
	projectColumns = "id, user_id, name, created_at, deleted_at"
	taskColumns    = strings.Join(domain.TaskFields, ", ")
)

// notDeleted is the tombstone predicate every read path applies.
const notDeleted = "deleted_at IS NULL"

func qualified(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}

var (
	findUserByUsernameSQL = `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND ` + notDeleted

	createUserSQL = `INSERT INTO users (username) VALUES ($1)
		ON CONFLICT (username) DO UPDATE SET deleted_at = NULL
		RETURNING ` + userColumns

	deleteUserSQL = `WITH prev AS (
			SELECT ` + userColumns + ` FROM users WHERE id = $1 AND ` + notDeleted + ` FOR UPDATE
		)
		UPDATE users u SET deleted_at = NOW() FROM prev WHERE u.id = prev.id
		RETURNING ` + qualified("prev", userColumns)

	listTasksSQL = `SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = $1 AND ` + notDeleted + `
		ORDER BY created_at DESC`

	listTasksFilteredSQL = `SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = $1 AND ` + notDeleted + `
			AND ($2::text IS NULL OR title ILIKE $2 ESCAPE '\')
			AND ($3::boolean IS NULL OR done = $3)
			AND ($4::timestamptz IS NULL OR deadline >= $4)
			AND ($5::timestamptz IS NULL OR deadline < $5)
		ORDER BY created_at DESC`

	listTasksByUsernameSQL = `SELECT ` + qualified("t", taskColumns) + `
		FROM tasks t JOIN users u ON u.id = t.user_id
		WHERE u.username = $1 AND u.` + notDeleted + ` AND t.` + notDeleted + `
		ORDER BY t.created_at DESC`

	findTaskByIDSQL = `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND ` + notDeleted

	deleteTaskByIDSQL = `WITH prev AS (
			SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND ` + notDeleted + ` FOR UPDATE
		)
		UPDATE tasks t SET deleted_at = NOW() FROM prev WHERE t.id = prev.id
		RETURNING ` + qualified("prev", taskColumns)

	createTaskSQL = `INSERT INTO tasks (user_id, title, description, done, deadline, project_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns

	editTaskSQL = `UPDATE tasks
		SET title = $2, description = $3, deadline = $4, done = $5, project_id = $6
		WHERE id = $1 AND ` + notDeleted + `
		RETURNING ` + taskColumns

	findProjectByNameSQL = `SELECT ` + projectColumns + ` FROM projects
		WHERE user_id = $1 AND name = $2 AND ` + notDeleted

	findProjectByIDSQL = `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND ` + notDeleted

	createProjectSQL = `INSERT INTO projects (user_id, name) VALUES ($1, $2)
		ON CONFLICT (user_id, name) DO UPDATE SET deleted_at = NULL
		RETURNING ` + projectColumns

	listProjectsSQL = `SELECT ` + projectColumns + ` FROM projects
		WHERE user_id = $1 AND ` + notDeleted + `
		ORDER BY name`
)

// listTasksQuery picks the statement for filter and binds its arguments.
// The filtered statement text is the same for every combination of set
// fields; unset fields are bound as NULL and short-circuit their predicate.
func listTasksQuery(userID uuid.UUID, filter domain.Filter) (string, []any) {
	if filter.IsEmpty() {
		return listTasksSQL, []any{userID}
	}

	var title *string
	if filter.Title != nil {
		pattern := "%" + escapeLike(*filter.Title) + "%"
		title = &pattern
	}
	return listTasksFilteredSQL, []any{userID, title, filter.Done, filter.StartDeadline, filter.EndDeadline}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes the LIKE metacharacters of s so it matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
