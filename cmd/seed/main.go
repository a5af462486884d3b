package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/oksasatya/recipe-app-api/config"
	"github.com/oksasatya/recipe-app-api/internal/application"
	pginfra "github.com/oksasatya/recipe-app-api/internal/infrastructure/postgres"
	"github.com/oksasatya/recipe-app-api/pkg/helpers"
)

// seed creates a superuser, like Django's createsuperuser.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	email := flag.String("email", os.Getenv("SEED_ADMIN_EMAIL"), "superuser email")
	password := flag.String("password", os.Getenv("SEED_ADMIN_PASSWORD"), "superuser password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 0, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("invalid postgres config: %v", err)
	}
	defer pool.Close()

	if err := pginfra.WaitForDB(ctx, pool, cfg.DBWaitAttempts, cfg.DBWaitInterval, logger); err != nil {
		log.Fatalf("database never became available: %v", err)
	}
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	users := application.NewUserService(pginfra.NewUserRepository(pool), logger)
	u, err := users.CreateSuperuser(ctx, *email, *password)
	if errors.Is(err, application.ErrEmailTaken) {
		fmt.Printf("superuser %s already exists\n", application.NormalizeEmail(*email))
		return
	}
	if err != nil {
		log.Fatalf("failed to create superuser: %v", err)
	}
	fmt.Printf("created superuser: id=%d email=%s\n", u.ID, u.Email)
}
