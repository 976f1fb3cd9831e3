package main

import (
	"context"
	"errors"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/vncsmyrnk/pulse/internal/adapters/handler/http"
	"github.com/vncsmyrnk/pulse/internal/adapters/oauth/google"
	"github.com/vncsmyrnk/pulse/internal/adapters/repository/mongodb"
	"github.com/vncsmyrnk/pulse/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pulse/internal/config"
	"github.com/vncsmyrnk/pulse/internal/core/ports"
	"github.com/vncsmyrnk/pulse/internal/core/services"
)

type store struct {
	users       ports.UserRepository
	auth        ports.AuthRepository
	tokens      ports.CaregiverTokenRepository
	links       ports.RelationshipRepository
	forms       ports.FormRepository
	medications ports.MedicationRepository
	ping        http.Pinger
	close       func()
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDB)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			client.Disconnect(context.Background())
			return nil, err
		}
		return &store{
			users:       mongodb.NewUserRepository(db),
			auth:        mongodb.NewAuthRepository(db),
			tokens:      mongodb.NewCaregiverTokenRepository(db),
			links:       mongodb.NewRelationshipRepository(db),
			forms:       mongodb.NewFormRepository(db),
			medications: mongodb.NewMedicationRepository(db),
			ping:        func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
			close:       func() { client.Disconnect(context.Background()) },
		}, nil
	default:
		db, err := postgres.Open(ctx, cfg.Postgres.ConnString())
		if err != nil {
			return nil, err
		}
		return &store{
			users:       postgres.NewUserRepository(db),
			auth:        postgres.NewAuthRepository(db),
			tokens:      postgres.NewCaregiverTokenRepository(db),
			links:       postgres.NewRelationshipRepository(db),
			forms:       postgres.NewFormRepository(db),
			medications: postgres.NewMedicationRepository(db),
			ping:        db.PingContext,
			close:       func() { db.Close() },
		}, nil
	}
}

// @title        Pulse API
// @version      1.0
// @description  Symptom tracking for patients and their caregivers.
// @BasePath     /
func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	config.LoadEnv(log)
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.SetLevel(cfg.LogLevel)
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is empty, access tokens are not secure")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to open store")
	}
	defer st.close()

	authSvc := services.NewAuthService(st.users, st.auth, google.NewVerifier(), services.AuthConfig{
		JWTSecret:      cfg.JWTSecret,
		GoogleClientID: cfg.GoogleClientID,
	})
	userSvc := services.NewUserService(st.users, st.links)
	caregiverSvc := services.NewCaregiverService(st.tokens, st.links, log)
	formSvc := services.NewFormService(st.forms, st.links)
	aggregatorSvc := services.NewAggregatorService(st.forms, st.links)
	medicationSvc := services.NewMedicationService(st.medications)

	handler := http.NewHandler(http.Handlers{
		Auth:       http.NewAuthHandler(authSvc, log, cfg.RedirectURL, cfg.CookieDomain, cfg.CookieSameSite),
		User:       http.NewUserHandler(userSvc, log),
		Caregiver:  http.NewCaregiverHandler(caregiverSvc, log),
		Form:       http.NewFormHandler(formSvc, aggregatorSvc, log),
		Medication: http.NewMedicationHandler(medicationSvc, log),
		Health:     http.NewHealthHandler(st.ping, log),
	}, authSvc, cfg.CORSOrigins, log)

	server := &stdhttp.Server{Addr: cfg.Addr(), Handler: handler}

	go func() {
		log.WithFields(logrus.Fields{"addr": cfg.Addr(), "store": cfg.StoreDriver}).Info("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("shutdown failed")
	}
}
