// internal/config/env.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// Env is the process configuration read from environment variables.
// Binaries load a .env file first via godotenv/autoload.
type Env struct {
	DatabaseURL      string `env:"DATABASE_URL"`
	PostgresUser     string `env:"POSTGRES_USER"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresHost     string `env:"PG_HOST" envDefault:"localhost"`
	PostgresPort     string `env:"PG_PORT" envDefault:"5432"`
	PostgresDatabase string `env:"PG_DATABASE" envDefault:"cattledrive"`

	RedisAddr   string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB     int           `env:"REDIS_DB" envDefault:"0"`
	QueueName   string        `env:"HISTORIAN_QUEUE_NAME" envDefault:"cattledrive_actions"`
	SnapshotTTL time.Duration `env:"SNAPSHOT_TTL" envDefault:"24h"`

	HistorianBatchSize int `env:"HISTORIAN_BATCH_SIZE" envDefault:"20"`
	HistorianFlushMs   int `env:"HISTORIAN_FLUSH_MS" envDefault:"500"`
	InactivityTimeout  int `env:"GAME_INACTIVITY_TIMEOUT_SEC" envDefault:"600"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	RulesFile string `env:"RULES_FILE"`
}

// LoadEnv parses the environment into an Env.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// PostgresDSN returns DATABASE_URL, or a URL assembled from the PG_* parts.
func (e Env) PostgresDSN() string {
	if e.DatabaseURL != "" {
		return e.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		e.PostgresUser, e.PostgresPassword, e.PostgresHost, e.PostgresPort, e.PostgresDatabase)
}

// FlushInterval is the historian batch flush period.
func (e Env) FlushInterval() time.Duration {
	return time.Duration(e.HistorianFlushMs) * time.Millisecond
}

// ConfigureLogging applies LOG_LEVEL to the standard logrus logger. Unknown levels
// fall back to info.
func (e Env) ConfigureLogging() {
	level, err := logrus.ParseLevel(e.LogLevel)
	if err != nil {
		logrus.WithField("level", e.LogLevel).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
