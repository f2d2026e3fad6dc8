package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		AppEnv:   "dev",
		Port:     "8080",
		Database: DatabaseConfig{URL: "motopartes.db"},
		JWT:      JWTConfig{Secret: defaultJWTSecret, TTL: 24 * time.Hour},
		Redis:    RedisConfig{CacheTTL: 5 * time.Minute},
		Kafka:    KafkaConfig{ReservaTopic: "reservas.estado"},
		Display:  DisplayConfig{TimeZone: "America/Lima"},
	}
}

func TestValidateConfig_DevAllowsDefaultSecret(t *testing.T) {
	require.NoError(t, validateConfig(validConfig()))
}

func TestValidateConfig_ProdRejectsDefaultSecret(t *testing.T) {
	cfg := validConfig()
	cfg.AppEnv = "production"

	err := validateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	cfg.JWT.Secret = "a-real-secret"
	assert.NoError(t, validateConfig(cfg))
}

func TestValidateConfig_Errors(t *testing.T) {
	cases := map[string]func(c *Config){
		"empty port":        func(c *Config) { c.Port = " " },
		"empty database":    func(c *Config) { c.Database.URL = "" },
		"zero jwt ttl":      func(c *Config) { c.JWT.TTL = 0 },
		"bad timezone":      func(c *Config) { c.Display.TimeZone = "Mars/Olympus" },
		"redis zero ttl":    func(c *Config) { c.Redis.Addr = "localhost:6379"; c.Redis.CacheTTL = 0 },
		"kafka empty topic": func(c *Config) { c.Kafka.Brokers = []string{"localhost:9092"}; c.Kafka.ReservaTopic = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(cfg)
			assert.Error(t, validateConfig(cfg))
		})
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "DEV")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://motopartes.pe,https://admin.motopartes.pe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, []string{"https://motopartes.pe", "https://admin.motopartes.pe"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, "America/Lima", cfg.Location().String())
}
