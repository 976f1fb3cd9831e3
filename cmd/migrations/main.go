package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/vncsmyrnk/pulse/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pulse/internal/config"
)

// Applies migrations embedded in the postgres adapter.
//
//	migrations                 applies every up migration
//	migrations 002_create      applies the up migration whose name contains 002_create
//	migrations -down 002       applies the matching down migration
func main() {
	log := logrus.New()
	config.LoadEnv(log)

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	var down bool
	flag.StringVar(&cfg.Postgres.Host, "db-host", cfg.Postgres.Host, "Database host")
	flag.StringVar(&cfg.Postgres.Port, "db-port", cfg.Postgres.Port, "Database port")
	flag.StringVar(&cfg.Postgres.User, "db-user", cfg.Postgres.User, "Database user")
	flag.StringVar(&cfg.Postgres.Password, "db-pass", cfg.Postgres.Password, "Database password")
	flag.StringVar(&cfg.Postgres.DBName, "db-name", cfg.Postgres.DBName, "Database name")
	flag.BoolVar(&down, "down", false, "Apply the down migration instead")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.Postgres.ConnString())
	if err != nil {
		log.WithError(err).Fatal("failed to connect")
	}
	defer db.Close()

	if flag.NArg() == 0 && !down {
		if err := postgres.Migrate(ctx, db); err != nil {
			log.WithError(err).Fatal("migration failed")
		}
		log.Info("all migrations applied")
		return
	}

	suffix := "up.sql"
	if down {
		suffix = "down.sql"
	}
	name, err := findMigration(suffix, flag.Arg(0))
	if err != nil {
		log.WithError(err).Fatal("migration not found")
	}

	if err := postgres.ApplyMigration(ctx, db, name); err != nil {
		log.WithError(err).Fatal("migration failed")
	}
	log.WithField("migration", name).Info("migration file executed successfully")
}

func findMigration(suffix, pattern string) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("a migration name is required")
	}
	names, err := postgres.MigrationNames(suffix)
	if err != nil {
		return "", err
	}
	for _, name := range names {
		if strings.Contains(name, pattern) {
			return name, nil
		}
	}
	return "", fmt.Errorf("no %s migration matches %q", suffix, pattern)
}
