package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const defaultJWTSecret = "change-me-jwt-secret"

type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"dev"`
	Port     string `envconfig:"PORT" default:"8080"`
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	CORS     CORSConfig
	Display  DisplayConfig
}

type DatabaseConfig struct {
	URL string `envconfig:"DATABASE_URL" default:"motopartes.db"`
}

type JWTConfig struct {
	Secret string        `envconfig:"JWT_SECRET" default:"change-me-jwt-secret"`
	TTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`
}

// RedisConfig is optional: an empty Addr disables the product cache and
// falls back to in-memory recent searches.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"5m"`
}

type KafkaConfig struct {
	Brokers      []string `envconfig:"KAFKA_BROKERS"`
	ReservaTopic string   `envconfig:"KAFKA_RESERVAS_TOPIC" default:"reservas.estado"`
}

type CORSConfig struct {
	AllowOrigins []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	MaxAge       time.Duration `envconfig:"CORS_MAX_AGE" default:"10m"`
}

type DisplayConfig struct {
	TimeZone string `envconfig:"DISPLAY_TIMEZONE" default:"America/Lima"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "process env config")
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsDev() bool {
	return c.AppEnv == "dev" || c.AppEnv == "development" || c.AppEnv == "local"
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Display.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.Port) == "" {
		return errors.New("PORT must not be empty")
	}
	if strings.TrimSpace(cfg.Database.URL) == "" {
		return errors.New("DATABASE_URL must not be empty")
	}
	if cfg.JWT.TTL <= 0 {
		return errors.New("JWT_TTL must be > 0")
	}
	if cfg.Redis.Addr != "" && cfg.Redis.CacheTTL <= 0 {
		return errors.New("CACHE_TTL must be > 0 when REDIS_ADDR is set")
	}
	if len(cfg.Kafka.Brokers) > 0 && strings.TrimSpace(cfg.Kafka.ReservaTopic) == "" {
		return errors.New("KAFKA_RESERVAS_TOPIC must not be empty when KAFKA_BROKERS is set")
	}
	if _, err := time.LoadLocation(cfg.Display.TimeZone); err != nil {
		return errors.Wrapf(err, "invalid DISPLAY_TIMEZONE %q", cfg.Display.TimeZone)
	}

	if isProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.JWT.Secret, defaultJWTSecret) {
		return errors.New("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
