package storage

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"todo_api/internal/domain"

	"github.com/google/uuid"
)

// namespace seeds the deterministic ids of users and projects that only
// exist implicitly in a task collection.
var namespace = uuid.MustParse("4f0d7c1e-6a5b-4c1f-9b8e-2d6a3e7f9c10")

// UserID returns the id a Collection assigns to username.
func UserID(username string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(username))
}

// ProjectID returns the id a Collection assigns to the project name of userID.
func ProjectID(userID uuid.UUID, name string) uuid.UUID {
	return uuid.NewSHA1(userID, []byte(name))
}

// Collection serves the task operations of the todo facade on top of a
// whole-collection Storage. Each mutation is a read-modify-write of the
// full collection, serialized by mu.
//
// Only tasks are persisted. Users and projects get deterministic ids, so a
// user or project referenced by a stored task is recognized again after a
// restart.
type Collection struct {
	mu       sync.Mutex
	storage  Storage
	users    map[string]*domain.User
	projects map[uuid.UUID]*domain.Project
	now      func() time.Time
}

// NewCollection returns a Collection over s.
func NewCollection(s Storage) *Collection {
	return &Collection{
		storage:  s,
		users:    make(map[string]*domain.User),
		projects: make(map[uuid.UUID]*domain.Project),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Storage returns the backend the collection reads and writes.
func (c *Collection) Storage() Storage {
	return c.storage
}

func (c *Collection) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if u, ok := c.users[username]; ok {
		if u.DeletedAt != nil {
			return nil, nil
		}
		out := *u
		return &out, nil
	}

	tasks, err := c.storage.Read(ctx)
	if err != nil {
		return nil, err
	}
	id := UserID(username)
	for _, t := range tasks {
		if t.UserID == id {
			u := &domain.User{ID: id, Username: username, CreatedAt: t.CreatedAt}
			c.users[username] = u
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

func (c *Collection) CreateUser(_ context.Context, username string) (*domain.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, ok := c.users[username]
	if ok {
		u.DeletedAt = nil
	} else {
		u = &domain.User{ID: UserID(username), Username: username, CreatedAt: c.now()}
		c.users[username] = u
	}
	out := *u
	return &out, nil
}

func (c *Collection) DeleteUser(_ context.Context, id uuid.UUID) (*domain.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, u := range c.users {
		if u.ID == id && u.DeletedAt == nil {
			pre := *u
			now := c.now()
			u.DeletedAt = &now
			return &pre, nil
		}
	}
	return nil, nil
}

func (c *Collection) ListTasksByUser(ctx context.Context, userID uuid.UUID, filter domain.Filter) ([]domain.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tasks, err := c.storage.Read(ctx)
	if err != nil {
		return nil, err
	}

	out := []domain.Task{}
	for _, t := range tasks {
		if t.UserID == userID && filter.Match(t) {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Task) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (c *Collection) FindTaskByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tasks, err := c.storage.Read(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexLive(tasks, id); i >= 0 {
		return &tasks[i], nil
	}
	return nil, nil
}

func (c *Collection) DeleteTaskByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tasks, err := c.storage.Read(ctx)
	if err != nil {
		return nil, err
	}
	i := indexLive(tasks, id)
	if i < 0 {
		return nil, nil
	}

	pre := tasks[i]
	now := c.now()
	tasks[i].DeletedAt = &now
	if err := c.storage.Write(ctx, tasks); err != nil {
		return nil, err
	}
	return &pre, nil
}

func (c *Collection) CreateUserTask(ctx context.Context, nt domain.NewTask) (*domain.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tasks, err := c.storage.Read(ctx)
	if err != nil {
		return nil, err
	}

	t := domain.Task{
		ID:          uuid.New(),
		UserID:      nt.UserID,
		Title:       nt.Title,
		Description: nt.Description,
		Done:        nt.Done,
		Deadline:    nt.Deadline,
		ProjectID:   nt.ProjectID,
		CreatedAt:   c.now(),
	}
	tasks = append(tasks, t)
	if err := c.storage.Write(ctx, tasks); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Collection) EditUserTask(ctx context.Context, id uuid.UUID, row domain.TaskRow) (*domain.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tasks, err := c.storage.Read(ctx)
	if err != nil {
		return nil, err
	}
	i := indexLive(tasks, id)
	if i < 0 {
		return nil, nil
	}

	t := &tasks[i]
	t.Title = row.Title
	t.Description = row.Description
	t.Deadline = row.Deadline
	t.Done = row.Done
	t.ProjectID = row.ProjectID
	if err := c.storage.Write(ctx, tasks); err != nil {
		return nil, err
	}
	out := *t
	return &out, nil
}

func (c *Collection) FindProjectByName(ctx context.Context, userID uuid.UUID, name string) (*domain.Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := ProjectID(userID, name)
	if p, ok := c.projects[id]; ok {
		if p.DeletedAt != nil {
			return nil, nil
		}
		out := *p
		return &out, nil
	}

	tasks, err := c.storage.Read(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if t.UserID == userID && t.ProjectID != nil && *t.ProjectID == id {
			p := &domain.Project{ID: id, UserID: userID, Name: name, CreatedAt: t.CreatedAt}
			c.projects[id] = p
			out := *p
			return &out, nil
		}
	}
	return nil, nil
}

// FindProjectByID returns the project with id. A project not seen by this
// process is still found through a live task referencing it; its name stays
// empty until it is looked up by name or created again.
func (c *Collection) FindProjectByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.projects[id]; ok {
		if p.DeletedAt != nil {
			return nil, nil
		}
		out := *p
		return &out, nil
	}

	tasks, err := c.storage.Read(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if !t.IsDeleted() && t.ProjectID != nil && *t.ProjectID == id {
			return &domain.Project{ID: id, UserID: t.UserID, CreatedAt: t.CreatedAt}, nil
		}
	}
	return nil, nil
}

func (c *Collection) CreateProject(_ context.Context, userID uuid.UUID, name string) (*domain.Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := ProjectID(userID, name)
	p, ok := c.projects[id]
	if ok {
		p.DeletedAt = nil
	} else {
		p = &domain.Project{ID: id, UserID: userID, Name: name, CreatedAt: c.now()}
		c.projects[id] = p
	}
	out := *p
	return &out, nil
}

func (c *Collection) ListProjectsByUser(_ context.Context, userID uuid.UUID) ([]domain.Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := []domain.Project{}
	for _, p := range c.projects {
		if p.UserID == userID && p.DeletedAt == nil {
			out = append(out, *p)
		}
	}
	slices.SortFunc(out, func(a, b domain.Project) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return out, nil
}

// indexLive returns the index of the non-deleted task with id, or -1.
func indexLive(tasks []domain.Task, id uuid.UUID) int {
	for i, t := range tasks {
		if t.ID == id && !t.IsDeleted() {
			return i
		}
	}
	return -1
}
