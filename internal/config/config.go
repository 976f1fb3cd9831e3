package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/pulse/internal/adapters/repository/postgres"
)

const (
	DefaultPort = 4444
	minPort     = 1024
	maxPort     = 65535

	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	Port           int
	StoreDriver    string
	Postgres       postgres.Config
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	GoogleClientID string
	RedirectURL    string
	CookieDomain   string
	CookieSameSite http.SameSite
	CORSOrigins    []string
	LogLevel       logrus.Level
}

// LoadEnv reads .env into the process environment. A missing file is not an error.
func LoadEnv(log logrus.FieldLogger) {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found")
	}
}

// Load builds the configuration from the environment.
func Load() (*Config, error) {
	port, err := parsePort(os.Getenv("API_PORT"))
	if err != nil {
		return nil, err
	}

	level, err := logrus.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	driver := strings.ToLower(getenv("STORE_DRIVER", DriverPostgres))
	if driver != DriverPostgres && driver != DriverMongo {
		return nil, fmt.Errorf("invalid STORE_DRIVER %q: expected %q or %q", driver, DriverPostgres, DriverMongo)
	}

	sameSite, err := parseSameSite(getenv("COOKIE_SAMESITE", "lax"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:        port,
		StoreDriver: driver,
		Postgres: postgres.Config{
			Host:     getenv("POSTGRES_HOST", "localhost"),
			Port:     getenv("POSTGRES_PORT", "5432"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
		},
		MongoURI:       getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getenv("MONGO_DB", "pulse"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		RedirectURL:    getenv("OAUTH_REDIRECT_URL", "/"),
		CookieDomain:   os.Getenv("COOKIE_DOMAIN"),
		CookieSameSite: sameSite,
		CORSOrigins:    splitList(getenv("CORS_ORIGINS", "*")),
		LogLevel:       level,
	}, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

// parsePort falls back to DefaultPort when raw is empty.
func parsePort(raw string) (int, error) {
	if raw == "" {
		return DefaultPort, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid API_PORT %q: %w", raw, err)
	}
	if port < minPort || port > maxPort {
		return 0, fmt.Errorf("invalid API_PORT %d: must be within %d-%d", port, minPort, maxPort)
	}
	return port, nil
}

func parseSameSite(raw string) (http.SameSite, error) {
	switch strings.ToLower(raw) {
	case "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	}
	return 0, errors.New("invalid COOKIE_SAMESITE: expected lax, strict or none")
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
