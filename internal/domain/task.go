package domain

import (
	"time"

	"github.com/google/uuid"
)

// Task is a single item of a user's list.
type Task struct {
	ID          uuid.UUID  `db:"id" json:"id" yaml:"id"`
	UserID      uuid.UUID  `db:"user_id" json:"user_id" yaml:"user_id"`
	Title       string     `db:"title" json:"title" yaml:"title"`
	Description *string    `db:"description" json:"description" yaml:"description"`
	Done        bool       `db:"done" json:"done" yaml:"done"`
	Deadline    *time.Time `db:"deadline" json:"deadline" yaml:"deadline"`
	ProjectID   *uuid.UUID `db:"project_id" json:"project_id" yaml:"project_id"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at" yaml:"created_at"`
	DeletedAt   *time.Time `db:"deleted_at" json:"deleted_at" yaml:"deleted_at"`
}

// Task field keys, in the order flat-file backends lay them out.
const (
	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDone        = "done"
	FieldDeadline    = "deadline"
	FieldProjectID   = "project_id"
	FieldCreatedAt   = "created_at"
	FieldDeletedAt   = "deleted_at"
)

// TaskFields is the stable key set of a task record.
var TaskFields = []string{
	FieldID,
	FieldUserID,
	FieldTitle,
	FieldDescription,
	FieldDone,
	FieldDeadline,
	FieldProjectID,
	FieldCreatedAt,
	FieldDeletedAt,
}

// IsDeleted reports whether the task carries a tombstone.
func (t Task) IsDeleted() bool {
	return t.DeletedAt != nil
}

// NewTask holds the values of a task about to be inserted.
type NewTask struct {
	UserID      uuid.UUID
	Title       string
	Description *string
	Done        bool
	Deadline    *time.Time
	ProjectID   *uuid.UUID
}

// TaskRow is the full set of mutable task columns written by an edit.
type TaskRow struct {
	Title       string
	Description *string
	Deadline    *time.Time
	Done        bool
	ProjectID   *uuid.UUID
}

// Row returns the mutable columns of t.
func (t Task) Row() TaskRow {
	return TaskRow{
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline,
		Done:        t.Done,
		ProjectID:   t.ProjectID,
	}
}

// TaskAttributes is the attribute bag of a create or edit call. Only fields
// with Set == true were supplied by the caller; an explicit null is a Set
// field holding a nil pointer.
type TaskAttributes struct {
	Title       Optional[string]
	Description Optional[*string]
	Done        Optional[bool]
	Deadline    Optional[*time.Time]
	ProjectID   Optional[*uuid.UUID]
}

// Apply resolves the attributes against the current row: every field not
// supplied keeps its value from current.
func (a TaskAttributes) Apply(current TaskRow) TaskRow {
	return TaskRow{
		Title:       a.Title.Or(current.Title),
		Description: a.Description.Or(current.Description),
		Deadline:    a.Deadline.Or(current.Deadline),
		Done:        a.Done.Or(current.Done),
		ProjectID:   a.ProjectID.Or(current.ProjectID),
	}
}
