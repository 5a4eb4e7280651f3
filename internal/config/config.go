package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, read once at startup.
type Config struct {
	Addr              string        `env:"HTTP_ADDR" envDefault:":8080"`
	Env               string        `env:"APP_ENV" envDefault:"development"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	DataProvider      string        `env:"DATA_PROVIDER"`
	ComplianceTimeout time.Duration `env:"COMPLIANCE_TIMEOUT" envDefault:"8s"`
	FixturePath       string        `env:"FIXTURE_PATH" envDefault:"fixtures/demo.yaml"`
	SQLitePath        string        `env:"SQLITE_PATH" envDefault:"campaigns.db"`

	Databricks DatabricksConfig `envPrefix:"DATABRICKS_"`
	// SQL_WAREHOUSE_ID is the older name for DATABRICKS_WAREHOUSE_ID.
	LegacyWarehouseID string `env:"SQL_WAREHOUSE_ID"`

	Postgres PostgresConfig `envPrefix:"DB_"`
	Tables   TableConfig
	Queue    QueueConfig
}

type DatabricksConfig struct {
	Host         string `env:"HOST"`
	Token        string `env:"TOKEN"`
	HTTPPath     string `env:"HTTP_PATH"`
	WarehouseID  string `env:"WAREHOUSE_ID"`
	Catalog      string `env:"CATALOG"`
	Schema       string `env:"SCHEMA"`
	DashboardURL string `env:"DASHBOARD_URL"`
}

// PostgresConfig keeps the DB_* variables used by the Postgres mirror.
type PostgresConfig struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
	Schema   string `env:"SCHEMA"`
}

type TableConfig struct {
	Campaigns  string `env:"CAMPAIGNS_TABLE" envDefault:"campaign_briefs"`
	Compliance string `env:"COMPLIANCE_TABLE" envDefault:"compliance_decisions"`
	Creatives  string `env:"CREATIVES_TABLE" envDefault:"generated_creatives"`
	Handoff    string `env:"HANDOFF_TABLE" envDefault:"handoff_plans"`
	Analysis   string `env:"ANALYSIS_TABLE" envDefault:"campaign_analysis"`
	Events     string `env:"EVENTS_TABLE" envDefault:"publish_events"`
}

type QueueConfig struct {
	URL   string `env:"AMQP_URL"`
	Topic string `env:"APPROVAL_QUEUE" envDefault:"campaign_approvals"`
}

// Load parses the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Parse reads configuration from an explicit environment snapshot instead of os.Environ.
func Parse(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Production reports whether the production logger and settings apply.
func (c Config) Production() bool {
	e := strings.ToLower(c.Env)
	return e == "production" || e == "release"
}

// WarehouseID prefers DATABRICKS_WAREHOUSE_ID over SQL_WAREHOUSE_ID.
func (c Config) WarehouseID() string {
	if c.Databricks.WarehouseID != "" {
		return c.Databricks.WarehouseID
	}
	return c.LegacyWarehouseID
}

// HTTPPath is the explicit DATABRICKS_HTTP_PATH or the path of the configured warehouse.
func (c Config) HTTPPath() string {
	if c.Databricks.HTTPPath != "" {
		return c.Databricks.HTTPPath
	}
	if id := c.WarehouseID(); id != "" {
		return "/sql/1.0/warehouses/" + id
	}
	return ""
}

// HasDatabricksCredentials reports whether both host and token are present.
func (c Config) HasDatabricksCredentials() bool {
	return strings.TrimSpace(c.Databricks.Host) != "" && strings.TrimSpace(c.Databricks.Token) != ""
}
