package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"todo_api/internal/domain"
)

func newTestCollection(t *testing.T) *Collection {
	t.Helper()
	c := NewCollection(NewMemory())
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	c.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return c
}

func TestCollectionUsers(t *testing.T) {
	ctx := context.Background()
	c := newTestCollection(t)

	if u, err := c.FindUserByUsername(ctx, "alice"); err != nil || u != nil {
		t.Fatalf("unknown user = %v, %v", u, err)
	}

	alice, err := c.CreateUser(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if alice.ID != UserID("alice") {
		t.Fatalf("user id is not deterministic")
	}

	again, _ := c.CreateUser(ctx, "alice")
	if again.ID != alice.ID || !again.CreatedAt.Equal(alice.CreatedAt) {
		t.Fatalf("second create returned a new user: %+v", again)
	}

	deleted, _ := c.DeleteUser(ctx, alice.ID)
	if deleted == nil || deleted.DeletedAt != nil {
		t.Fatalf("delete should return the pre-image, got %+v", deleted)
	}
	if u, _ := c.FindUserByUsername(ctx, "alice"); u != nil {
		t.Fatalf("deleted user still visible")
	}
	if u, _ := c.DeleteUser(ctx, alice.ID); u != nil {
		t.Fatalf("deleting twice returned %+v", u)
	}

	revived, _ := c.CreateUser(ctx, "alice")
	if revived.ID != alice.ID || revived.DeletedAt != nil {
		t.Fatalf("resurrected user = %+v", revived)
	}
}

func TestCollectionTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newTestCollection(t)
	alice, _ := c.CreateUser(ctx, "alice")

	first, err := c.CreateUserTask(ctx, domain.NewTask{UserID: alice.ID, Title: "first"})
	if err != nil {
		t.Fatal(err)
	}
	second, _ := c.CreateUserTask(ctx, domain.NewTask{UserID: alice.ID, Title: "second", Done: true})

	list, err := c.ListTasksByUser(ctx, alice.ID, domain.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("list not newest first: %+v", list)
	}

	row := first.Row()
	row.Title = "first, edited"
	edited, err := c.EditUserTask(ctx, first.ID, row)
	if err != nil || edited == nil || edited.Title != "first, edited" {
		t.Fatalf("edit = %+v, %v", edited, err)
	}
	if !edited.CreatedAt.Equal(first.CreatedAt) || edited.UserID != alice.ID {
		t.Fatalf("edit changed immutable fields: %+v", edited)
	}

	pre, err := c.DeleteTaskByID(ctx, first.ID)
	if err != nil || pre == nil || pre.DeletedAt != nil || pre.Title != "first, edited" {
		t.Fatalf("delete = %+v, %v; want pre-image", pre, err)
	}
	if got, _ := c.FindTaskByID(ctx, first.ID); got != nil {
		t.Fatalf("deleted task still found")
	}
	if got, _ := c.EditUserTask(ctx, first.ID, row); got != nil {
		t.Fatalf("edited a deleted task")
	}
	if got, _ := c.DeleteTaskByID(ctx, first.ID); got != nil {
		t.Fatalf("deleted a task twice")
	}

	list, _ = c.ListTasksByUser(ctx, alice.ID, domain.Filter{})
	if len(list) != 1 || list[0].ID != second.ID {
		t.Fatalf("list after delete = %+v", list)
	}

	// The tombstone stays in the stored collection.
	stored, _ := c.Storage().Read(ctx)
	if len(stored) != 2 {
		t.Fatalf("stored %d tasks; want 2", len(stored))
	}
}

func TestCollectionListFilters(t *testing.T) {
	ctx := context.Background()
	c := newTestCollection(t)
	alice, _ := c.CreateUser(ctx, "alice")
	bob, _ := c.CreateUser(ctx, "bob")

	deadline := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	c.CreateUserTask(ctx, domain.NewTask{UserID: alice.ID, Title: "Buy Milk", Deadline: &deadline})
	c.CreateUserTask(ctx, domain.NewTask{UserID: alice.ID, Title: "walk", Done: true})
	c.CreateUserTask(ctx, domain.NewTask{UserID: bob.ID, Title: "buy bread"})

	title := "buy"
	list, _ := c.ListTasksByUser(ctx, alice.ID, domain.Filter{Title: &title})
	if len(list) != 1 || list[0].Title != "Buy Milk" {
		t.Fatalf("title filter = %+v", list)
	}

	done := true
	list, _ = c.ListTasksByUser(ctx, alice.ID, domain.Filter{Done: &done})
	if len(list) != 1 || list[0].Title != "walk" {
		t.Fatalf("done filter = %+v", list)
	}

	end := deadline.Add(time.Second)
	list, _ = c.ListTasksByUser(ctx, alice.ID, domain.Filter{StartDeadline: &deadline, EndDeadline: &end})
	if len(list) != 1 || list[0].Title != "Buy Milk" {
		t.Fatalf("deadline filter = %+v", list)
	}
	list, _ = c.ListTasksByUser(ctx, alice.ID, domain.Filter{EndDeadline: &deadline})
	if len(list) != 0 {
		t.Fatalf("end bound must be exclusive: %+v", list)
	}
}

func TestCollectionProjects(t *testing.T) {
	ctx := context.Background()
	c := newTestCollection(t)
	alice, _ := c.CreateUser(ctx, "alice")
	bob, _ := c.CreateUser(ctx, "bob")

	work, _ := c.CreateProject(ctx, alice.ID, "work")
	c.CreateProject(ctx, alice.ID, "home")
	c.CreateProject(ctx, bob.ID, "work")

	if again, _ := c.CreateProject(ctx, alice.ID, "work"); again.ID != work.ID {
		t.Fatalf("project create is not idempotent")
	}
	if p, _ := c.FindProjectByName(ctx, alice.ID, "work"); p == nil || p.ID != work.ID {
		t.Fatalf("find by name = %+v", p)
	}
	if p, _ := c.FindProjectByName(ctx, alice.ID, "garden"); p != nil {
		t.Fatalf("found unknown project %+v", p)
	}
	if p, _ := c.FindProjectByID(ctx, work.ID); p == nil || p.Name != "work" {
		t.Fatalf("find by id = %+v", p)
	}

	list, _ := c.ListProjectsByUser(ctx, alice.ID)
	if len(list) != 2 || list[0].Name != "home" || list[1].Name != "work" {
		t.Fatalf("projects = %+v", list)
	}
}

func TestCollectionRecoversUsersAndProjectsFromStorage(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.json")

	first := NewCollection(NewJSONFile(path))
	if err := Ensure(ctx, first.Storage()); err != nil {
		t.Fatal(err)
	}
	alice, _ := first.CreateUser(ctx, "alice")
	project, _ := first.CreateProject(ctx, alice.ID, "work")
	task, err := first.CreateUserTask(ctx, domain.NewTask{UserID: alice.ID, Title: "t", ProjectID: &project.ID})
	if err != nil {
		t.Fatal(err)
	}

	restarted := NewCollection(NewJSONFile(path))
	u, err := restarted.FindUserByUsername(ctx, "alice")
	if err != nil || u == nil || u.ID != alice.ID {
		t.Fatalf("user after restart = %+v, %v", u, err)
	}
	p, err := restarted.FindProjectByName(ctx, alice.ID, "work")
	if err != nil || p == nil || p.ID != project.ID {
		t.Fatalf("project after restart = %+v, %v", p, err)
	}
	got, _ := restarted.FindTaskByID(ctx, task.ID)
	if got == nil || got.ProjectID == nil || *got.ProjectID != project.ID {
		t.Fatalf("task after restart = %+v", got)
	}
}

func TestCollectionFindsProjectByIDFromStoredTasks(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.json")

	first := NewCollection(NewJSONFile(path))
	if err := Ensure(ctx, first.Storage()); err != nil {
		t.Fatal(err)
	}
	alice, _ := first.CreateUser(ctx, "alice")
	project, _ := first.CreateProject(ctx, alice.ID, "work")
	unused, _ := first.CreateProject(ctx, alice.ID, "garden")
	if _, err := first.CreateUserTask(ctx, domain.NewTask{UserID: alice.ID, Title: "t", ProjectID: &project.ID}); err != nil {
		t.Fatal(err)
	}

	restarted := NewCollection(NewJSONFile(path))
	p, err := restarted.FindProjectByID(ctx, project.ID)
	if err != nil || p == nil || p.ID != project.ID || p.UserID != alice.ID {
		t.Fatalf("project by id after restart = %+v, %v", p, err)
	}
	if p, _ := restarted.FindProjectByID(ctx, unused.ID); p != nil {
		t.Fatalf("unreferenced project found after restart: %+v", p)
	}
}
