package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	CORS       CORSConfig
	Log        LogConfig
	Upstream   UpstreamConfig
	Browse     BrowseConfig
	Thresholds ThresholdsConfig
	Reports    ReportsConfig
	Cleanup    CleanupConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// UpstreamConfig points the gateway at the exam platform API.
type UpstreamConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// BrowseConfig tunes working-set caching and pagination defaults.
type BrowseConfig struct {
	CacheEnabled    bool
	CacheTTL        time.Duration
	DefaultPageSize int
	MaxPageSize     int
}

// ThresholdsConfig holds the guidance-office business cut-offs. The defaults
// mirror the values counselors use today; all are overridable per deployment.
type ThresholdsConfig struct {
	PassMark          float64
	SlowSeconds       float64
	VerySlowSeconds   float64
	ModerateWrongPct  float64
	HardWrongPct      float64
	DefaultTimeThresh float64
}

// ReportsConfig controls printable/downloadable report generation.
type ReportsConfig struct {
	Enabled         bool
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
}

// CleanupConfig gates the stale-data purge endpoints.
type CleanupConfig struct {
	Enabled    bool
	CutoffDays int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret: v.GetString("JWT_SECRET"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Upstream = UpstreamConfig{
		BaseURL: strings.TrimRight(v.GetString("UPSTREAM_BASE_URL"), "/"),
		Token:   v.GetString("UPSTREAM_TOKEN"),
		Timeout: parseDuration(v.GetString("UPSTREAM_TIMEOUT"), 15*time.Second),
	}

	cfg.Browse = BrowseConfig{
		CacheEnabled:    v.GetBool("BROWSE_CACHE_ENABLED"),
		CacheTTL:        parseDuration(v.GetString("BROWSE_CACHE_TTL"), 5*time.Minute),
		DefaultPageSize: v.GetInt("BROWSE_DEFAULT_PAGE_SIZE"),
		MaxPageSize:     v.GetInt("BROWSE_MAX_PAGE_SIZE"),
	}

	cfg.Thresholds = ThresholdsConfig{
		PassMark:          v.GetFloat64("THRESHOLD_PASS_MARK"),
		SlowSeconds:       v.GetFloat64("THRESHOLD_SLOW_SECONDS"),
		VerySlowSeconds:   v.GetFloat64("THRESHOLD_VERY_SLOW_SECONDS"),
		ModerateWrongPct:  v.GetFloat64("THRESHOLD_MODERATE_WRONG_PCT"),
		HardWrongPct:      v.GetFloat64("THRESHOLD_HARD_WRONG_PCT"),
		DefaultTimeThresh: v.GetFloat64("THRESHOLD_DEFAULT_TIME"),
	}

	cfg.Reports = ReportsConfig{
		Enabled:         v.GetBool("ENABLE_REPORTS"),
		StorageDir:      v.GetString("REPORTS_STORAGE_DIR"),
		SignedURLSecret: v.GetString("REPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("REPORTS_SIGNED_URL_TTL"), 24*time.Hour),
	}

	cfg.Cleanup = CleanupConfig{
		Enabled:    v.GetBool("ENABLE_CLEANUP"),
		CutoffDays: v.GetInt("CLEANUP_CUTOFF_DAYS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "occ_admission")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("UPSTREAM_BASE_URL", "http://localhost:9000/api")
	v.SetDefault("UPSTREAM_TOKEN", "")
	v.SetDefault("UPSTREAM_TIMEOUT", "15s")

	v.SetDefault("BROWSE_CACHE_ENABLED", true)
	v.SetDefault("BROWSE_CACHE_TTL", "5m")
	v.SetDefault("BROWSE_DEFAULT_PAGE_SIZE", 10)
	v.SetDefault("BROWSE_MAX_PAGE_SIZE", 100)

	v.SetDefault("THRESHOLD_PASS_MARK", 75)
	v.SetDefault("THRESHOLD_SLOW_SECONDS", 60)
	v.SetDefault("THRESHOLD_VERY_SLOW_SECONDS", 90)
	v.SetDefault("THRESHOLD_MODERATE_WRONG_PCT", 30)
	v.SetDefault("THRESHOLD_HARD_WRONG_PCT", 60)
	v.SetDefault("THRESHOLD_DEFAULT_TIME", 60)

	v.SetDefault("ENABLE_REPORTS", true)
	v.SetDefault("REPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("REPORTS_SIGNED_URL_SECRET", "dev_reports_secret")
	v.SetDefault("REPORTS_SIGNED_URL_TTL", "24h")

	v.SetDefault("ENABLE_CLEANUP", false)
	v.SetDefault("CLEANUP_CUTOFF_DAYS", 180)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
