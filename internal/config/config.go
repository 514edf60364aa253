package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Gemini   GeminiConfig
	Matching MatchingConfig
	Log      LogConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	RunMigrations bool

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret string
}

type GeminiConfig struct {
	APIKey         string
	EmbeddingModel string
	TextModel      string
}

type MatchingConfig struct {
	TopK           int
	EmbeddingSpace string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

var defaults = map[string]any{
	"DB_SSL_MODE":               "disable",
	"DB_RUN_MIGRATIONS":         false,
	"DB_CONNECT_TIMEOUT":        "5s",
	"DB_POOL_MAX_CONNS":         10,
	"DB_POOL_MIN_CONNS":         0,
	"DB_POOL_MAX_CONN_LIFETIME": "1h",
	"DB_POOL_MAX_CONN_IDLE":     "30m",
	"DB_POOL_HEALTH_CHECK":      "1m",
	"REDIS_HOST":                "localhost",
	"REDIS_PORT":                "6379",
	"REDIS_TTL":                 "10m",
	"GEMINI_EMBEDDING_MODEL":    "text-embedding-004",
	"GEMINI_TEXT_MODEL":         "gemini-2.5-flash",
	"MATCH_TOP_K":               3,
	"LOG_JSON":                  false,
	"LOG_DEBUG":                 false,
}

// Load reads configuration from the environment, an optional .env file and
// an optional CONFIG_FILE. Environment variables win over the file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	if file := strings.TrimSpace(v.GetString("CONFIG_FILE")); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBSSLMode:             opt("DB_SSL_MODE"),
		RunMigrations:         v.GetBool("DB_RUN_MIGRATIONS"),
		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		TTL:      v.GetDuration("REDIS_TTL"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret: req("JWT_ACCESS_SECRET"),
	}

	cfg.Gemini = GeminiConfig{
		APIKey:         opt("GEMINI_API_KEY"),
		EmbeddingModel: opt("GEMINI_EMBEDDING_MODEL"),
		TextModel:      opt("GEMINI_TEXT_MODEL"),
	}

	cfg.Matching = MatchingConfig{
		TopK:           v.GetInt("MATCH_TOP_K"),
		EmbeddingSpace: opt("EMBEDDING_SPACE"),
	}
	if cfg.Matching.TopK <= 0 {
		cfg.Matching.TopK = 3
	}
	if cfg.Matching.EmbeddingSpace == "" {
		cfg.Matching.EmbeddingSpace = "gemini/" + cfg.Gemini.EmbeddingModel
	}

	cfg.Log = LogConfig{
		JSON:  v.GetBool("LOG_JSON"),
		Debug: v.GetBool("LOG_DEBUG"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}
