package domain

import (
	"strings"
	"time"
)

// Filter narrows a task listing. Nil fields do not constrain the result.
type Filter struct {
	Title         *string
	Done          *bool
	StartDeadline *time.Time // inclusive
	EndDeadline   *time.Time // exclusive
}

// IsEmpty reports whether no field of the filter is set.
func (f Filter) IsEmpty() bool {
	return f.Title == nil && f.Done == nil && f.StartDeadline == nil && f.EndDeadline == nil
}

// Match reports whether t satisfies every set field of the filter.
// Tombstones are never matched.
func (f Filter) Match(t Task) bool {
	if t.IsDeleted() {
		return false
	}
	if f.Title != nil && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(*f.Title)) {
		return false
	}
	if f.Done != nil && t.Done != *f.Done {
		return false
	}
	if f.StartDeadline != nil || f.EndDeadline != nil {
		if t.Deadline == nil {
			return false
		}
		if f.StartDeadline != nil && t.Deadline.Before(*f.StartDeadline) {
			return false
		}
		if f.EndDeadline != nil && !t.Deadline.Before(*f.EndDeadline) {
			return false
		}
	}
	return true
}
