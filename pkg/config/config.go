package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Auth         AuthConfig
	Relay        RelayConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GESTORA_APP_ENV" default:"dev"`
	Port         string `envconfig:"GESTORA_APP_PORT" default:"8347"`
	LogLevel     string `envconfig:"GESTORA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GESTORA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GESTORA_DB_DSN"`
	Driver string `envconfig:"GESTORA_DB_DRIVER" default:"sqlite"`

	// SQLite path used when no DSN is provided (the desktop default).
	SQLitePath string `envconfig:"GESTORA_DB_SQLITE_PATH" default:"gestora.db"`

	PostgresHost     string `envconfig:"GESTORA_DB_HOST"`
	PostgresPort     int    `envconfig:"GESTORA_DB_PORT" default:"5432"`
	PostgresUser     string `envconfig:"GESTORA_DB_USER"`
	PostgresPassword string `envconfig:"GESTORA_DB_PASSWORD"`
	PostgresName     string `envconfig:"GESTORA_DB_NAME"`
	PostgresSSLMode  string `envconfig:"GESTORA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GESTORA_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"GESTORA_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"GESTORA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GESTORA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

// AuthConfig points the login pass-through at the external auth backend.
type AuthConfig struct {
	LoginURL string `envconfig:"GESTORA_AUTH_LOGIN_URL"`
}

type RelayConfig struct {
	HTTPTimeout time.Duration `envconfig:"GESTORA_RELAY_HTTP_TIMEOUT" default:"30s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"GESTORA_AUTO_MIGRATE" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if db.IsSQLite() {
		if db.SQLitePath == "" {
			return fmt.Errorf("GESTORA_DB_SQLITE_PATH is required for the sqlite driver")
		}
		db.DSN = db.SQLitePath
		return nil
	}

	missing := []string{}
	if db.PostgresHost == "" {
		missing = append(missing, "GESTORA_DB_HOST")
	}
	if db.PostgresUser == "" {
		missing = append(missing, "GESTORA_DB_USER")
	}
	if db.PostgresName == "" {
		missing = append(missing, "GESTORA_DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("either GESTORA_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.PostgresUser)
	if db.PostgresPassword != "" {
		userInfo = url.UserPassword(db.PostgresUser, db.PostgresPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.PostgresHost, db.PostgresPort),
		Path:   db.PostgresName,
	}

	if db.PostgresSSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.PostgresSSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
