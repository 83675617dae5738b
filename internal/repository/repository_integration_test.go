package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"todo_api/internal/db"
	"todo_api/internal/domain"

	"github.com/google/uuid"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping integration test")
	}
	ctx := context.Background()
	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := db.Migrate(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(pool)
}

func uniqueName(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func TestRepositoryUserResurrection(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	name := uniqueName("alice")

	u, err := repo.CreateUser(ctx, name)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	pre, err := repo.DeleteUser(ctx, u.ID)
	if err != nil || pre == nil || pre.DeletedAt != nil {
		t.Fatalf("delete = %+v, %v", pre, err)
	}
	if got, _ := repo.FindUserByUsername(ctx, name); got != nil {
		t.Fatalf("deleted user still found")
	}
	back, err := repo.CreateUser(ctx, name)
	if err != nil || back.ID != u.ID || back.DeletedAt != nil {
		t.Fatalf("resurrect = %+v, %v", back, err)
	}
}

func TestRepositoryTaskLifecycle(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	u, err := repo.CreateUser(ctx, uniqueName("bob"))
	if err != nil {
		t.Fatal(err)
	}

	desc := "Do the homework"
	created, err := repo.CreateUserTask(ctx, domain.NewTask{UserID: u.ID, Title: "Do my homework", Description: &desc})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if created.Done || created.Deadline != nil || created.ProjectID != nil {
		t.Fatalf("defaults not applied: %+v", created)
	}

	found, err := repo.FindTaskByID(ctx, created.ID)
	if err != nil || found == nil || found.Title != created.Title || *found.Description != desc {
		t.Fatalf("find = %+v, %v", found, err)
	}

	row := found.Row()
	row.Done = true
	row.Description = nil
	edited, err := repo.EditUserTask(ctx, created.ID, row)
	if err != nil || edited == nil || !edited.Done || edited.Description != nil {
		t.Fatalf("edit = %+v, %v", edited, err)
	}

	pre, err := repo.DeleteTaskByID(ctx, created.ID)
	if err != nil || pre == nil || pre.DeletedAt != nil || !pre.Done {
		t.Fatalf("delete = %+v, %v; want pre-image", pre, err)
	}
	if again, _ := repo.DeleteTaskByID(ctx, created.ID); again != nil {
		t.Fatalf("second delete returned %+v", again)
	}
	if got, _ := repo.FindTaskByID(ctx, created.ID); got != nil {
		t.Fatalf("deleted task still found")
	}
	if got, _ := repo.EditUserTask(ctx, created.ID, row); got != nil {
		t.Fatalf("edited a deleted task")
	}
}

func TestRepositoryDeadlineFilters(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	u, err := repo.CreateUser(ctx, uniqueName("carol"))
	if err != nil {
		t.Fatal(err)
	}

	for _, sec := range []int64{10, 20, 30} {
		d := time.Unix(sec, 0).UTC()
		if _, err := repo.CreateUserTask(ctx, domain.NewTask{UserID: u.ID, Title: "t", Deadline: &d}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := repo.CreateUserTask(ctx, domain.NewTask{UserID: u.ID, Title: "no deadline"}); err != nil {
		t.Fatal(err)
	}

	at := func(sec int64) *time.Time { v := time.Unix(sec, 0).UTC(); return &v }
	cases := []struct {
		filter domain.Filter
		want   int
	}{
		{domain.Filter{}, 4},
		{domain.Filter{StartDeadline: at(10), EndDeadline: at(20)}, 1},
		{domain.Filter{StartDeadline: at(10), EndDeadline: at(21)}, 2},
		{domain.Filter{StartDeadline: at(20)}, 2},
		{domain.Filter{EndDeadline: at(30)}, 2},
		{domain.Filter{StartDeadline: at(31)}, 0},
	}
	for _, c := range cases {
		got, err := repo.ListTasksByUser(ctx, u.ID, c.filter)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != c.want {
			t.Fatalf("filter %+v: got %d tasks; want %d", c.filter, len(got), c.want)
		}
	}
}

func TestRepositoryTitleFilterIsLiteral(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	u, err := repo.CreateUser(ctx, uniqueName("dave"))
	if err != nil {
		t.Fatal(err)
	}
	for _, title := range []string{"Buy MILK", "50% off", "500 off"} {
		if _, err := repo.CreateUserTask(ctx, domain.NewTask{UserID: u.ID, Title: title}); err != nil {
			t.Fatal(err)
		}
	}

	milk := "milk"
	if got, _ := repo.ListTasksByUser(ctx, u.ID, domain.Filter{Title: &milk}); len(got) != 1 {
		t.Fatalf("case-insensitive match: got %d", len(got))
	}
	percent := "0%"
	if got, _ := repo.ListTasksByUser(ctx, u.ID, domain.Filter{Title: &percent}); len(got) != 1 || got[0].Title != "50% off" {
		t.Fatalf("percent should match literally: %+v", got)
	}
}

func TestRepositoryProjects(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	u, err := repo.CreateUser(ctx, uniqueName("erin"))
	if err != nil {
		t.Fatal(err)
	}

	p, err := repo.CreateProject(ctx, u.ID, "work")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	again, err := repo.CreateProject(ctx, u.ID, "work")
	if err != nil || again.ID != p.ID {
		t.Fatalf("project upsert = %+v, %v", again, err)
	}
	if got, _ := repo.FindProjectByName(ctx, u.ID, "work"); got == nil || got.ID != p.ID {
		t.Fatalf("find by name = %+v", got)
	}
	if got, _ := repo.FindProjectByID(ctx, p.ID); got == nil || got.Name != "work" {
		t.Fatalf("find by id = %+v", got)
	}
	list, err := repo.ListProjectsByUser(ctx, u.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %+v, %v", list, err)
	}

	task, err := repo.CreateUserTask(ctx, domain.NewTask{UserID: u.ID, Title: "in project", ProjectID: &p.ID})
	if err != nil || task.ProjectID == nil || *task.ProjectID != p.ID {
		t.Fatalf("task in project = %+v, %v", task, err)
	}

	byName, err := repo.ListTasksByUsername(ctx, u.Username)
	if err != nil || len(byName) != 1 {
		t.Fatalf("list by username = %+v, %v", byName, err)
	}
}
