package main

import (
	"context"
	"flag"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/vncsmyrnk/pulse/internal/adapters/repository/mongodb"
	"github.com/vncsmyrnk/pulse/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pulse/internal/config"
	"github.com/vncsmyrnk/pulse/internal/core/ports"
	"github.com/vncsmyrnk/pulse/internal/core/services"
)

// Deletes expired caregiver invitation tokens. Redemption never accepts an
// expired token, so running this job only keeps the token table small.
func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	config.LoadEnv(log)

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	flag.StringVar(&cfg.StoreDriver, "store", cfg.StoreDriver, "Store driver (postgres or mongo)")
	flag.StringVar(&cfg.Postgres.Host, "db-host", cfg.Postgres.Host, "Database host")
	flag.StringVar(&cfg.Postgres.Port, "db-port", cfg.Postgres.Port, "Database port")
	flag.StringVar(&cfg.Postgres.User, "db-user", cfg.Postgres.User, "Database user")
	flag.StringVar(&cfg.Postgres.Password, "db-pass", cfg.Postgres.Password, "Database password")
	flag.StringVar(&cfg.Postgres.DBName, "db-name", cfg.Postgres.DBName, "Database name")
	flag.StringVar(&cfg.MongoURI, "mongo-uri", cfg.MongoURI, "MongoDB connection string")
	flag.Parse()

	// Use a timeout for the job execution to prevent it from hanging indefinitely
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var tokens ports.CaregiverTokenRepository
	var links ports.RelationshipRepository
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			log.WithError(err).Fatal("failed to connect")
		}
		defer client.Disconnect(context.Background())
		db := client.Database(cfg.MongoDB)
		tokens = mongodb.NewCaregiverTokenRepository(db)
		links = mongodb.NewRelationshipRepository(db)
	default:
		db, err := postgres.Open(ctx, cfg.Postgres.ConnString())
		if err != nil {
			log.WithError(err).Fatal("failed to connect")
		}
		defer db.Close()
		tokens = postgres.NewCaregiverTokenRepository(db)
		links = postgres.NewRelationshipRepository(db)
	}

	caregiverSvc := services.NewCaregiverService(tokens, links, log)

	log.Info("starting caregiver token purge")
	if _, err := caregiverSvc.PurgeExpired(ctx); err != nil {
		log.WithError(err).Fatal("error purging caregiver tokens")
	}
	log.Info("caregiver token purge completed")
}
