package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/smartbiz/backend/internal/infrastructure/config"
	"github.com/smartbiz/backend/internal/infrastructure/logger"
	"github.com/smartbiz/backend/internal/infrastructure/migration"
)

func main() {
	var (
		migrationsPath = flag.String("path", "migrations", "path to migration files")
		steps          = flag.Int("steps", 0, "number of migrations to apply (negative rolls back)")
		forceVersion   = flag.Int("force", -1, "force a version without running migrations")
	)
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	migrator, err := migration.New(db, *migrationsPath, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer func() { _ = migrator.Close() }()

	switch command {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	case "steps":
		err = migrator.Steps(*steps)
	case "version":
		var (
			version uint
			dirty   bool
		)
		version, dirty, err = migrator.Version()
		if err == nil {
			log.Info("Current migration version",
				zap.Uint("version", version),
				zap.Bool("dirty", dirty),
			)
		}
	case "force":
		if *forceVersion < 0 {
			log.Fatal("force requires -force=<version>")
		}
		err = migrator.Force(*forceVersion)
	default:
		log.Fatal("Unknown command", zap.String("command", command))
	}

	if err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
}
