package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/risinghub/hub/internal/adapters/repository/sqlstore"
	"github.com/risinghub/hub/internal/config"
)

// Applies one embedded migration, e.g. `migrations init.up` or
// `migrations 0001_init.down`. DB_DRIVER and DATABASE_URL select the target.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("a migration name is required.")
	}
	migrationName := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or POSTGRES_* must be set")
	}

	driver, err := sqlstore.ParseDriver(cfg.DBDriver)
	if err != nil {
		log.Fatal(err)
	}

	fileName, content, err := sqlstore.MigrationFile(driver, migrationName)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := sqlstore.Open(ctx, driver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	if _, err := store.DB().ExecContext(ctx, string(content)); err != nil {
		log.Fatalf("Failed to execute SQL file %s: %v", fileName, err)
	}

	fmt.Printf("Migration file %s executed successfully.\n", fileName)
}
