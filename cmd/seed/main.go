package main

import (
	"context"
	"log"
	"time"

	"mentorlink/internal/config"
	"mentorlink/internal/database/migration"
	dbpostgres "mentorlink/internal/database/postgres"
	"mentorlink/internal/database/seeder"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	pool, ok := db.(*dbpostgres.Pool)
	if !ok {
		log.Fatalf("unexpected database implementation %T", db)
	}
	if err := migration.Up(ctx, pool.SQLDB()); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	runner := seeder.Runner{Seeders: seeder.Defaults()}
	if err := runner.Run(ctx, db); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	log.Println("seed complete")
}
