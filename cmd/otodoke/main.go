package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/ayase-dev/otodoke/internal/cli"
	"github.com/ayase-dev/otodoke/internal/config"
	"github.com/ayase-dev/otodoke/internal/db"
	"github.com/ayase-dev/otodoke/internal/domain"
	"github.com/ayase-dev/otodoke/internal/repository"
	"github.com/ayase-dev/otodoke/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	cal := domain.NewCalendar(cfg.LeadDays, loc)

	// Postgres when DATABASE_URL is set, SQLite otherwise.
	var (
		database *sql.DB
		repo     repository.CatalogRepo
	)
	if cfg.DatabaseURL != "" {
		database, err = db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("opening postgres: %w", err)
		}
		repo = repository.NewPostgresCatalogRepo(database)
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
		database, err = db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		repo = repository.NewSQLiteCatalogRepo(database)
	}
	defer database.Close()

	app := &cli.App{
		Config:  cfg,
		Cal:     cal,
		Repo:    repo,
		Catalog: service.NewCatalogService(repo, cal),
		Imports: service.NewImportService(repo),
		Logger:  logger,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}
