package config

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/andrewpaige1/recallcards-api/store"
)

// Backend names the kind of store a database URL selects
func Backend(databaseURL string) string {
	switch {
	case strings.HasPrefix(databaseURL, "mongodb://"), strings.HasPrefix(databaseURL, "mongodb+srv://"):
		return "mongo"
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return "postgres"
	case strings.HasPrefix(databaseURL, "memory://"):
		return "memory"
	default:
		return "sqlite"
	}
}

// Connect opens the store selected by env.DatabaseURL, prepares its schema
// and checks that it answers.
func Connect(ctx context.Context, env Environment, log *zap.Logger) (store.Store, error) {
	backend := Backend(env.DatabaseURL)

	var (
		s   store.Store
		err error
	)
	switch backend {
	case "mongo":
		s, err = store.NewMongoStore(ctx, env.DatabaseURL, env.MongoDatabase)
	case "memory":
		s = store.NewMemoryStore()
	case "postgres":
		s, err = openGorm(postgres.Open(env.DatabaseURL), env)
	default:
		s, err = openGorm(sqlite.Open(env.DatabaseURL), env)
	}
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", backend, err)
	}

	if err := s.Ping(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("ping %s: %w", backend, err)
	}
	log.Info("Connected to database", zap.String("backend", backend))
	return s, nil
}

func openGorm(dialector gorm.Dialector, env Environment) (store.Store, error) {
	level := logger.Warn
	if env.IsDevelopment {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}
	return store.NewGormStore(db)
}
