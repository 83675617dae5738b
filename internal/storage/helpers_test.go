package storage

import (
	"os"
	"testing"
	"time"

	"todo_api/internal/domain"

	"github.com/google/uuid"
)

func ptr[T any](v T) *T { return &v }

func sampleTasks() []domain.Task {
	user := uuid.MustParse("6f1c1e2a-9a57-4b0e-8c1e-0b7f3f1a2b3c")
	project := uuid.MustParse("0c2b1a7e-3d4f-4a5b-9c8d-7e6f5a4b3c2d")
	created := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	deadline := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	return []domain.Task{
		{
			ID:          uuid.MustParse("a1b2c3d4-0000-4000-8000-000000012345"),
			UserID:      user,
			Title:       "Do my homework",
			Description: ptr("Do the homework"),
			Done:        false,
			Deadline:    &deadline,
			ProjectID:   &project,
			CreatedAt:   created,
		},
		{
			ID:          uuid.MustParse("a1b2c3d4-0000-4000-8000-000000067890"),
			UserID:      user,
			Title:       "Do piano practice, then go running",
			Description: ptr("Use \"codewars\" for practice"),
			Done:        true,
			CreatedAt:   created.Add(time.Hour),
		},
	}
}

func assertTasksEqual(t *testing.T, got, want []domain.Task) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tasks; want %d", len(got), len(want))
	}
	for i := range want {
		if !taskEqual(got[i], want[i]) {
			t.Fatalf("task %d:\n got  %+v\n want %+v", i, got[i], want[i])
		}
	}
}

func taskEqual(a, b domain.Task) bool {
	return a.ID == b.ID &&
		a.UserID == b.UserID &&
		a.Title == b.Title &&
		equalPtr(a.Description, b.Description, func(x, y string) bool { return x == y }) &&
		a.Done == b.Done &&
		equalPtr(a.Deadline, b.Deadline, time.Time.Equal) &&
		equalPtr(a.ProjectID, b.ProjectID, func(x, y uuid.UUID) bool { return x == y }) &&
		a.CreatedAt.Equal(b.CreatedAt) &&
		equalPtr(a.DeletedAt, b.DeletedAt, time.Time.Equal)
}

func equalPtr[T any](a, b *T, eq func(T, T) bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return eq(*a, *b)
}

func skipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
}
