package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	AppVersion             string
	DatabaseURL            string
	AutoMigrate            bool
	JWTSecret              string
	JWTAudience            string
	CORSAllowOrigins       string
	RedisURL               string
	AnnouncementsCacheTTL  time.Duration
	NATSURL                string
	NATSSubjectPrefix      string
	ChatLogRateLimitPerMin int
	LogLevel               zerolog.Level
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// IsProduction reports whether error details must be hidden from clients.
func (c Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.AppEnv))
	return env == "production" || env == "prod"
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	v.SetEnvPrefix("CLARIFY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Supabase deployments export these names; keep them working.
	_ = v.BindEnv("app.port", "CLARIFY_APP_PORT", "PORT")
	_ = v.BindEnv("database.url", "CLARIFY_DATABASE_URL", "SUPABASE_DB_URL", "DATABASE_URL")
	_ = v.BindEnv("jwt.secret", "CLARIFY_JWT_SECRET", "SUPABASE_JWT_SECRET", "SUPABASE_SERVICE_KEY")

	v.SetDefault("app.name", "ClarifyAI API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8000")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("cors.allow_origins", "http://localhost:3000")
	v.SetDefault("cache.announcements_ttl", "30s")
	v.SetDefault("nats.subject_prefix", "clarify")
	v.SetDefault("ratelimit.chat_logs_per_minute", 30)
	v.SetDefault("log.level", "info")

	ttlString := strings.TrimSpace(v.GetString("cache.announcements_ttl"))
	if ttlString == "" {
		ttlString = "30s"
	}
	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid announcements cache ttl: %w", err)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(v.GetString("log.level"))))
	if err != nil {
		return Config{}, fmt.Errorf("invalid log level: %w", err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		AppVersion:             v.GetString("app.version"),
		DatabaseURL:            strings.TrimSpace(v.GetString("database.url")),
		AutoMigrate:            v.GetBool("database.auto_migrate"),
		JWTSecret:              v.GetString("jwt.secret"),
		JWTAudience:            strings.TrimSpace(v.GetString("jwt.audience")),
		CORSAllowOrigins:       v.GetString("cors.allow_origins"),
		RedisURL:               strings.TrimSpace(v.GetString("redis.url")),
		AnnouncementsCacheTTL:  ttl,
		NATSURL:                strings.TrimSpace(v.GetString("nats.url")),
		NATSSubjectPrefix:      strings.Trim(strings.TrimSpace(v.GetString("nats.subject_prefix")), "."),
		ChatLogRateLimitPerMin: v.GetInt("ratelimit.chat_logs_per_minute"),
		LogLevel:               level,
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided")
	}

	if cfg.ChatLogRateLimitPerMin <= 0 {
		cfg.ChatLogRateLimitPerMin = 30
	}

	return cfg, nil
}
