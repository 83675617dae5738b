package domain

import (
	"time"

	"github.com/google/uuid"
)

// User owns tasks and projects. A user with DeletedAt set is invisible to lookups.
type User struct {
	ID        uuid.UUID  `db:"id" json:"id" yaml:"id"`
	Username  string     `db:"username" json:"username" yaml:"username"`
	CreatedAt time.Time  `db:"created_at" json:"created_at" yaml:"created_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at" yaml:"deleted_at"`
}
