package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	OpenAI       OpenAIConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPSTOCK_APP_ENV" default:"dev"`
	Port         string `envconfig:"SHOPSTOCK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOPSTOCK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPSTOCK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"SHOPSTOCK_DB_DRIVER" default:"sqlite"`
	Path   string `envconfig:"SHOPSTOCK_DB_PATH" default:"shopstock.db"`
	DSN    string `envconfig:"SHOPSTOCK_DB_DSN"`

	MaxOpenConns    int           `envconfig:"SHOPSTOCK_DB_MAX_OPEN_CONNS" default:"1"`
	MaxIdleConns    int           `envconfig:"SHOPSTOCK_DB_MAX_IDLE_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPSTOCK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPSTOCK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(db.Driver)) {
	case DBDriverSQLite:
		if db.Path == "" {
			return fmt.Errorf("SHOPSTOCK_DB_PATH is required for the sqlite driver")
		}
		return nil
	case DBDriverPostgres:
		if db.DSN == "" {
			return fmt.Errorf("SHOPSTOCK_DB_DSN is required for the postgres driver")
		}
		return nil
	default:
		return fmt.Errorf("unsupported db driver %q (want %s or %s)", db.Driver, DBDriverSQLite, DBDriverPostgres)
	}
}

// IsSQLite reports whether the embedded sqlite driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type OpenAIConfig struct {
	APIKey  string        `envconfig:"SHOPSTOCK_OPENAI_API_KEY"`
	BaseURL string        `envconfig:"SHOPSTOCK_OPENAI_BASE_URL" default:"https://api.openai.com"`
	Model   string        `envconfig:"SHOPSTOCK_OPENAI_MODEL" default:"gpt-4o-mini"`
	Timeout time.Duration `envconfig:"SHOPSTOCK_OPENAI_TIMEOUT" default:"30s"`
}

type FeatureFlagsConfig struct {
	// AutoCreateOnSet keeps the legacy behavior where setting a quantity for an
	// unknown item name creates the item with default fields. Turning it off makes
	// the tool surface report not-found like the keyed update path.
	AutoCreateOnSet bool `envconfig:"SHOPSTOCK_FEATURE_AUTO_CREATE_ON_SET" default:"true"`
}
