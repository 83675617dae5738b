package main

import (
	"context"
	"flag"
	"log"
	"os"

	"todo_api/internal/config"
	"todo_api/internal/db"
)

func main() {
	apply := flag.Bool("apply", false, "apply pending migrations")
	flag.Parse()

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

	if !*apply {
		if err := db.MigrationStatus(ctx, pool); err != nil {
			log.Fatalf("migration status: %v", err)
		}
		return
	}
	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}
	log.Println("migrations applied")
}
