// Command telemetry-useradd provisions an API credential in the api_user
// table. The telemetry API itself never creates users; this is the
// out-of-band seeding path.
//
// Database connection parameters come from the same environment variables the
// API reads (DBHOST, DBNAME, DBUSER_API/DBPW_API falling back to
// DBUSER/DBPW).
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/hpcstack/telemetry/internal/telemetry/app"
	"github.com/hpcstack/telemetry/internal/telemetry/store/postgres"
	"github.com/hpcstack/telemetry/pkg/cryptox"
	"github.com/hpcstack/telemetry/pkg/slogx"
)

func main() {
	username := flag.String("username", "", "username for the new API credential (required)")
	migrate := flag.Bool("migrate", false, "apply api_user migrations before inserting")
	flag.Parse()

	if *username == "" {
		flag.Usage()
		os.Exit(2)
	}

	// The password comes from the environment rather than a flag so it never
	// lands in shell history or process listings.
	password := os.Getenv("TELEMETRY_USERADD_PASSWORD")
	if password == "" {
		log.Fatal("TELEMETRY_USERADD_PASSWORD must be set")
	}

	cfg := app.LoadConfig()
	logger := slogx.New(slogx.Config{
		Service: "telemetry-useradd",
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  "text",
	})

	db := postgres.NewManager(cfg.APIUserDB, logger)

	if *migrate {
		if err := db.ApplyMigrations(); err != nil {
			log.Fatalf("failed to apply api_user migrations: %v", err)
		}
		logger.Info("api_user migrations applied")
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.NewUsers(db).Create(ctx, *username, hash); err != nil {
		log.Fatalf("failed to create user %q: %v", *username, err)
	}

	logger.Info("api user created", "username", *username)
}
