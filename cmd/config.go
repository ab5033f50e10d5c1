package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	SequenceBackendPostgres = "postgres"
	SequenceBackendRedis    = "redis"
	SequenceBackendMemory   = "memory"
)

type Config struct {
	HTTPPort         string        `validate:"required,numeric"`
	HTTPReadTimeout  time.Duration `validate:"gt=0"`
	HTTPWriteTimeout time.Duration `validate:"gt=0"`

	DBHost     string `validate:"required"`
	DBPort     string `validate:"required,numeric"`
	DBUser     string `validate:"required"`
	DBPassword string
	DBName     string `validate:"required"`
	DBSslMode  string `validate:"oneof=disable allow prefer require verify-ca verify-full"`

	JWTSecret string `validate:"required"`

	SequenceBackend           string `validate:"oneof=postgres redis memory"`
	RedisAddress              string `validate:"required_if=SequenceBackend redis"`
	SequenceReconcileSchedule string

	RequireApproverRole     bool
	ReceiveRequiresApproval bool
	ListMaxLimit            int `validate:"gte=1"`
	OpenAPIValidation       bool

	ProductSearchURL     string        `validate:"omitempty,url"`
	ProductSearchTimeout time.Duration `validate:"gt=0"`

	LogLevel string `validate:"oneof=trace debug info warn warning error fatal panic"`
}

// LoadConfig reads the configuration from the environment. Values from a .env file in
// the working directory are used for keys the environment does not set; the file is
// optional.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var problems []error
	collect := func(err error) {
		if err != nil {
			problems = append(problems, err)
		}
	}

	cfg := Config{
		HTTPPort:                  getEnv("HTTP_PORT", "8080"),
		DBHost:                    getEnv("DB_HOST", "localhost"),
		DBPort:                    getEnv("DB_PORT", "5432"),
		DBUser:                    getEnv("DB_USER", "postgres"),
		DBPassword:                getEnv("DB_PASSWORD", ""),
		DBName:                    getEnv("DB_NAME", "purchasing"),
		DBSslMode:                 getEnv("DB_SSLMODE", "disable"),
		JWTSecret:                 getEnv("JWT_SECRET", ""),
		SequenceBackend:           strings.ToLower(getEnv("SEQUENCE_BACKEND", SequenceBackendPostgres)),
		RedisAddress:              getEnv("REDIS_ADDRESS", ""),
		SequenceReconcileSchedule: getEnv("SEQUENCE_RECONCILE_SCHEDULE", "@every 5m"),
		ProductSearchURL:          getEnv("PRODUCT_SEARCH_URL", ""),
		LogLevel:                  strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	var err error
	cfg.HTTPReadTimeout, err = getEnvDuration("HTTP_READ_TIMEOUT", 15*time.Second)
	collect(err)
	cfg.HTTPWriteTimeout, err = getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	collect(err)
	cfg.ProductSearchTimeout, err = getEnvDuration("PRODUCT_SEARCH_TIMEOUT", 6*time.Second)
	collect(err)
	cfg.RequireApproverRole, err = getEnvBool("REQUIRE_APPROVER_ROLE", true)
	collect(err)
	cfg.ReceiveRequiresApproval, err = getEnvBool("RECEIVE_REQUIRES_APPROVAL", true)
	collect(err)
	cfg.OpenAPIValidation, err = getEnvBool("OPENAPI_VALIDATION", false)
	collect(err)
	cfg.ListMaxLimit, err = getEnvInt("LIST_MAX_LIMIT", 100)
	collect(err)

	if err = errors.Join(problems...); err != nil {
		return Config{}, err
	}
	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the value constraints declared on the fields.
func (c Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}
	problems := make([]error, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		problems = append(problems, fmt.Errorf("config %s: failed on %q", fe.Field(), fe.Tag()))
	}
	return errors.Join(problems...)
}

// DSN returns the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return value, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("config %s: %w", key, err)
	}
	return value, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return value, nil
}
