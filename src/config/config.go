package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSQLiteDSN = "file:library.db?_foreign_keys=1"
)

// Config holds everything the application reads from the environment.
type Config struct {
	ServerHost  string
	DBDriver    string
	DBDSN       string
	JWTSecret   string
	CORSOrigins []string
	LogLevel    string
	GinMode     string

	SeedLibrarianUsername string
	SeedLibrarianPassword string

	GoogleDriveCredentialsPath string
	GoogleDriveCredentialsJSON string
}

// AuthEnabled reports whether protected routes require a token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// DriveEnabled reports whether catalogs can be imported from Google Drive links.
func (c *Config) DriveEnabled() bool {
	return c.GoogleDriveCredentialsPath != "" || c.GoogleDriveCredentialsJSON != ""
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		ServerHost:            valueOr(getenv("SERVER_HOST"), ":8080"),
		DBDriver:              strings.ToLower(valueOr(getenv("DB_DRIVER"), DriverPostgres)),
		DBDSN:                 getenv("DB_DSN"),
		JWTSecret:             getenv("JWT_SECRET"),
		LogLevel:              strings.ToLower(valueOr(getenv("LOG_LEVEL"), "info")),
		GinMode:               getenv("GIN_MODE"),
		SeedLibrarianUsername: valueOr(getenv("SEED_LIBRARIAN_USERNAME"), "librarian"),
		SeedLibrarianPassword: valueOr(getenv("SEED_LIBRARIAN_PASSWORD"), "librarian"),

		GoogleDriveCredentialsPath: getenv("GOOGLE_DRIVE_CREDENTIALS_PATH"),
		GoogleDriveCredentialsJSON: getenv("GOOGLE_DRIVE_CREDENTIALS_JSON"),
	}

	for _, origin := range strings.Split(valueOr(getenv("CORS_ORIGINS"), "http://localhost:8080"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBDSN == "" {
			return nil, errors.New("DB_DSN is required for the postgres driver")
		}
	case DriverSQLite:
		if cfg.DBDSN == "" {
			cfg.DBDSN = defaultSQLiteDSN
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("unsupported LOG_LEVEL %q", cfg.LogLevel)
	}

	return cfg, nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
