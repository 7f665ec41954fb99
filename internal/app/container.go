package app

import (
	"context"
	"fmt"
	"time"

	"mentorlink/internal/config"
	"mentorlink/internal/database"
	"mentorlink/internal/database/migration"
	dbpostgres "mentorlink/internal/database/postgres"
	"mentorlink/internal/infrastructure/cache"
	"mentorlink/internal/pkg/logger"

	"go.uber.org/zap"
)

type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
}

func NewContainer(cfg config.Config) (*Container, error) {
	log, err := logger.New(cfg.App.Environment)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	pool, ok := db.(*dbpostgres.Pool)
	if !ok {
		return nil, fmt.Errorf("unexpected database implementation %T", db)
	}
	if err := migration.Up(ctx, pool.SQLDB()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Container{
		Config: cfg,
		Logger: log,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, log),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
