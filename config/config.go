package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

const (
	EnvLogLevel             = "LENDING_LOG_LEVEL"
	EnvLogFormat            = "LENDING_LOG_FORMAT"
	EnvObservabilityEnabled = "LENDING_OBSERVABILITY_ENABLED"
	EnvStrictValidation     = "LENDING_STRICT_VALIDATION"
	EnvAMQPURL              = "LENDING_AMQP_URL"
	EnvAMQPExchange         = "LENDING_AMQP_EXCHANGE"
	EnvRabbitMQUser         = "RABBITMQ_USER"
	EnvRabbitMQPassword     = "RABBITMQ_PASSWORD"
	EnvRabbitMQIP           = "RABBITMQ_IP"
	EnvRabbitMQPort         = "RABBITMQ_PORT"
	EnvPostgresDSN          = "LENDING_POSTGRES_DSN"
	EnvReadersTable         = "LENDING_READERS_TABLE"
	EnvPostgresMaxConns     = "LENDING_POSTGRES_MAX_CONNS"

	LogFormatText = "text"
	LogFormatJSON = "json"

	DefaultAMQPExchange     = "lending.notifications"
	DefaultReadersTable     = "readers"
	DefaultPostgresMaxConns = int32(10)
	defaultRabbitMQPort     = "5672"
	defaultDotEnvFile       = ".env"
)

var (
	ErrInvalidLogLevel         = errors.New("invalid log level")
	ErrInvalidLogFormat        = errors.New("invalid log format")
	ErrInvalidBool             = errors.New("invalid boolean value")
	ErrInvalidMaxConns         = errors.New("postgres max connections must be a positive integer")
	ErrEmptyAMQPExchange       = errors.New("amqp exchange must not be empty when amqp is configured")
	ErrEmptyReadersTable       = errors.New("readers table must not be empty")
	ErrIncompleteRabbitMQCreds = errors.New("RABBITMQ_USER, RABBITMQ_PASSWORD and RABBITMQ_IP must be set together")
	ErrLoadingDotEnvFailed     = errors.New("loading .env file failed")
)

// Config holds the binary's configuration.
type Config struct {
	LogLevel             slog.Level
	LogFormat            string
	ObservabilityEnabled bool
	StrictValidation     bool
	AMQPURL              string
	AMQPExchange         string
	PostgresDSN          string
	ReadersTable         string
	PostgresMaxConns     int32
}

// Default returns the configuration used when no variable is set: text logs at info level,
// no telemetry, in-memory readers and log notifications only.
func Default() Config {
	return Config{
		LogLevel:         slog.LevelInfo,
		LogFormat:        LogFormatText,
		AMQPExchange:     DefaultAMQPExchange,
		ReadersTable:     DefaultReadersTable,
		PostgresMaxConns: DefaultPostgresMaxConns,
	}
}

// Load seeds the environment from the given .env files (".env" if none is given) and reads the configuration.
// Missing files are fine, malformed ones are not.
func Load(dotEnvFiles ...string) (Config, error) {
	if len(dotEnvFiles) == 0 {
		dotEnvFiles = []string{defaultDotEnvFile}
	}

	for _, file := range dotEnvFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Join(ErrLoadingDotEnvFailed, fmt.Errorf("%s: %w", file, err))
		}
	}

	return FromEnv()
}

// FromEnv reads and validates the configuration from the process environment.
func FromEnv() (Config, error) {
	cfg := Default()

	var err error

	if value := os.Getenv(EnvLogLevel); value != "" {
		if cfg.LogLevel, err = ParseLogLevel(value); err != nil {
			return Config{}, err
		}
	}

	if value := os.Getenv(EnvLogFormat); value != "" {
		cfg.LogFormat = strings.ToLower(value)
	}

	if cfg.ObservabilityEnabled, err = boolFromEnv(EnvObservabilityEnabled); err != nil {
		return Config{}, err
	}

	if cfg.StrictValidation, err = boolFromEnv(EnvStrictValidation); err != nil {
		return Config{}, err
	}

	if cfg.AMQPURL, err = amqpURLFromEnv(); err != nil {
		return Config{}, err
	}

	if value, ok := os.LookupEnv(EnvAMQPExchange); ok {
		cfg.AMQPExchange = value
	}

	cfg.PostgresDSN = os.Getenv(EnvPostgresDSN)

	if value, ok := os.LookupEnv(EnvReadersTable); ok {
		cfg.ReadersTable = value
	}

	if value := os.Getenv(EnvPostgresMaxConns); value != "" {
		maxConns, parseErr := strconv.ParseInt(value, 10, 32)
		if parseErr != nil || maxConns <= 0 {
			return Config{}, fmt.Errorf("%w: %q", ErrInvalidMaxConns, value)
		}

		cfg.PostgresMaxConns = int32(maxConns)
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports invalid combinations, all of them at once.
func (c Config) Validate() error {
	var errs []error

	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat))
	}

	if c.AMQPEnabled() && c.AMQPExchange == "" {
		errs = append(errs, ErrEmptyAMQPExchange)
	}

	if c.PostgresEnabled() && c.ReadersTable == "" {
		errs = append(errs, ErrEmptyReadersTable)
	}

	if c.PostgresEnabled() && c.PostgresMaxConns <= 0 {
		errs = append(errs, ErrInvalidMaxConns)
	}

	return errors.Join(errs...)
}

// AMQPEnabled reports whether notifications should also be published to RabbitMQ.
func (c Config) AMQPEnabled() bool {
	return c.AMQPURL != ""
}

// PostgresEnabled reports whether reader status should be looked up in Postgres.
func (c Config) PostgresEnabled() bool {
	return c.PostgresDSN != ""
}

// PGXPoolConfig creates the pgxpool.Config for the readers database.
func (c Config) PGXPoolConfig() (*pgxpool.Config, error) {
	const defaultMaxConnLifetime = time.Hour
	const defaultMaxConnIdleTime = time.Minute * 5
	const defaultHealthCheckPeriod = time.Minute
	const defaultConnectTimeout = time.Second * 5

	dbConfig, err := pgxpool.ParseConfig(c.PostgresDSN)
	if err != nil {
		return nil, err
	}

	dbConfig.MaxConns = c.PostgresMaxConns
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	return dbConfig, nil
}

// NewLogHandler creates the slog handler selected by LogFormat and LogLevel, writing to w.
func (c Config) NewLogHandler(w io.Writer) slog.Handler {
	options := &slog.HandlerOptions{Level: c.LogLevel}

	if c.LogFormat == LogFormatJSON {
		return slog.NewJSONHandler(w, options)
	}

	return slog.NewTextHandler(w, options)
}

// ParseLogLevel parses debug, info, warn or error, case-insensitively.
func ParseLogLevel(value string) (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, value)
	}

	return level, nil
}

// BuildRabbitMQURL assembles an AMQP URL, escaping the credentials.
func BuildRabbitMQURL(user, password, host, port string) string {
	if port == "" {
		port = defaultRabbitMQPort
	}

	amqpURL := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(user, password),
		Host:   host + ":" + port,
		Path:   "/",
	}

	return amqpURL.String()
}

func amqpURLFromEnv() (string, error) {
	if value := os.Getenv(EnvAMQPURL); value != "" {
		return value, nil
	}

	user := os.Getenv(EnvRabbitMQUser)
	password := os.Getenv(EnvRabbitMQPassword)
	host := os.Getenv(EnvRabbitMQIP)

	if user == "" && password == "" && host == "" {
		return "", nil
	}

	if user == "" || password == "" || host == "" {
		return "", ErrIncompleteRabbitMQCreds
	}

	return BuildRabbitMQURL(user, password, host, os.Getenv(EnvRabbitMQPort)), nil
}

func boolFromEnv(key string) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return false, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w for %s: %q", ErrInvalidBool, key, value)
	}

	return parsed, nil
}
