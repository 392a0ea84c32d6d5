// Package cli provides common initialization shared by the command
// entrypoints: logging, env loading, config validation and backend
// selection.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"budgeteer/internal/config"
	"budgeteer/internal/log"
	"budgeteer/internal/repo"
	"budgeteer/internal/storage"
	"budgeteer/internal/storage/memory"
)

// SetupLogger initializes structured logging and sets it as the
// process default.
func SetupLogger(level string) *log.Logger {
	logger := log.New("budgeteer", log.ParseLevel(level))
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenRepositories opens the configured backend and returns its ports
// plus a close function. The memory backend is for experimentation;
// nothing is persisted.
func OpenRepositories(logger *log.Logger, cfg *config.Config) (repo.Repositories, func() error) {
	if cfg.DataBackend == "memory" {
		logger.Warn("Using in-memory backend, data will not be persisted")
		return memory.New().Repositories(), func() error { return nil }
	}

	sqliteRepo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	logger.Info("Opened SQLite database", "path", cfg.SQLiteDBPath)
	return sqliteRepo.Repositories(), sqliteRepo.Close
}
