package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"flixnet/internal/config"
	"flixnet/internal/logging"
	"flixnet/pkg/database"
)

var rootCmd = &cobra.Command{
	Use:          "flixnet",
	Short:        "Flixnet movie catalog and watchlist backend",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads configuration, installs the global logger and opens a
// migrated store.
func bootstrap() (config.Config, zerolog.Logger, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, zerolog.Nop(), nil, fmt.Errorf("config: %w", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogPretty)
	log.Logger = logger

	if cfg.DBDriver == database.DriverSQLite {
		if err := ensureSQLiteDir(cfg.DatabaseURL); err != nil {
			return cfg, logger, nil, err
		}
	}
	db, err := database.Open(database.Options{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DatabaseURL,
		MaxOpenConns: cfg.DBMaxOpenConns,
	})
	if err != nil {
		return cfg, logger, nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.Migrate(db, cfg.DBDriver); err != nil {
		db.Close()
		return cfg, logger, nil, err
	}
	logger.Info().Str("driver", cfg.DBDriver).Msg("database ready")
	return cfg, logger, db, nil
}

// ensureSQLiteDir creates the parent directory of a file-backed SQLite DSN.
func ensureSQLiteDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || strings.Contains(path, ":memory:") {
		return nil
	}
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
