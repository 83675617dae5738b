package main

import (
	"context"
	"flag"
	"log"
	"os"

	"todo_api/internal/config"
	"todo_api/internal/db"
	"todo_api/internal/domain"
	"todo_api/internal/repository"
	"todo_api/internal/service"
)

func main() {
	username := flag.String("username", "testuser", "username to create or restore")
	task := flag.String("task", "", "optional title of a first task")
	flag.Parse()

	// expects DATABASE_URL or DB_CONNECTION_URI env var
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = os.Getenv("DB_CONNECTION_URI")
	}
	if dsn == "" {
		dsn = config.DefaultConnectionURI
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	todo, err := service.NewTodo(ctx, repository.New(pool), *username, true)
	if err != nil {
		log.Fatalf("create user failed: %v", err)
	}
	u := todo.User()
	log.Printf("user id=%s username=%s created_at=%v\n", u.ID, u.Username, u.CreatedAt)

	if *task != "" {
		t, err := todo.CreateTask(ctx, *task, domain.TaskAttributes{})
		if err != nil {
			log.Fatalf("create task failed: %v", err)
		}
		log.Printf("task id=%s title=%q\n", t.ID, t.Title)
	}

	tasks, err := todo.ListTasks(ctx, domain.Filter{})
	if err != nil {
		log.Fatalf("list tasks failed: %v", err)
	}
	log.Printf("user has %d live tasks\n", len(tasks))
}
