package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Dataset  DatasetConfig
	Scoring  ScoringConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatasetConfig struct {
	// Source is "csv" or "postgres".
	Source              string
	Paths               []string
	VectorizerPath      string
	VectorizerWeighting string
	// Workers bounds catalog vectorization; 0 uses every CPU.
	Workers int
}

type ScoringConfig struct {
	SimilarityEnabled bool
	SimilarityWeight  float64
	OverlapWeight     float64
	DefaultTopK       int
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout time.Duration
	PoolMaxConns   int32
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type AuthConfig struct {
	AdminPasswordHash string
	JWTAccessSecret   string
	JWTAccessExpires  time.Duration
}

const (
	DatasetSourceCSV      = "csv"
	DatasetSourcePostgres = "postgres"
)

var DefaultDatasetPaths = []string{
	"jobs_cleaned.csv",
	"jobs_cleaned_small.csv",
	"jobs.csv",
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads the server configuration from the environment.
func Load() (Config, error) {
	return load(true)
}

// LoadCLI is Load for command-line tools: APP_* variables are optional.
func LoadCLI() (Config, error) {
	return load(false)
}

func load(server bool) (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optFloat := func(key string, def float64) float64 {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optBool := func(key string, def bool) bool {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optSeconds := func(key string, def time.Duration) time.Duration {
		n := optInt(key, -1)
		if n <= 0 {
			return def
		}
		return time.Duration(n) * time.Second
	}

	appVar := opt
	if server {
		appVar = req
	}
	cfg.App = AppConfig{
		AppName:     appVar("APP_NAME"),
		Environment: appVar("APP_ENV"),
		HTTPPort:    appVar("HTTP_PORT"),
	}

	cfg.Dataset = DatasetConfig{
		Source:              strings.ToLower(optDefault("DATASET_SOURCE", DatasetSourceCSV)),
		Paths:               splitList(opt("DATASET_PATHS")),
		VectorizerPath:      optDefault("VECTORIZER_PATH", "vectorizer.json"),
		VectorizerWeighting: strings.ToLower(optDefault("VECTORIZER_WEIGHTING", "count")),
		Workers:             optInt("CATALOG_WORKERS", 0),
	}
	if len(cfg.Dataset.Paths) == 0 {
		cfg.Dataset.Paths = append([]string(nil), DefaultDatasetPaths...)
	}
	switch cfg.Dataset.Source {
	case DatasetSourceCSV, DatasetSourcePostgres:
	default:
		invalid = append(invalid, "DATASET_SOURCE")
	}
	switch cfg.Dataset.VectorizerWeighting {
	case "count", "tfidf":
	default:
		invalid = append(invalid, "VECTORIZER_WEIGHTING")
	}

	cfg.Scoring = ScoringConfig{
		SimilarityEnabled: optBool("SCORING_SIMILARITY_ENABLED", true),
		SimilarityWeight:  optFloat("SCORING_SIMILARITY_WEIGHT", 0.6),
		OverlapWeight:     optFloat("SCORING_OVERLAP_WEIGHT", 0.4),
		DefaultTopK:       optInt("SCORING_DEFAULT_TOP_K", 10),
	}
	if cfg.Scoring.SimilarityWeight+cfg.Scoring.OverlapWeight == 0 {
		invalid = append(invalid, "SCORING_SIMILARITY_WEIGHT", "SCORING_OVERLAP_WEIGHT")
	}

	dbVar := opt
	if cfg.Dataset.Source == DatasetSourcePostgres {
		dbVar = req
	}
	cfg.Database = DatabaseConfig{
		DBHost:     dbVar("DB_HOST"),
		DBPort:     dbVar("DB_PORT"),
		DBName:     dbVar("DB_NAME"),
		DBUser:     dbVar("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  optDefault("DB_SSL_MODE", "disable"),

		ConnectTimeout: optSeconds("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:   int32(optInt("DB_POOL_MAX_CONNS", 0)),
	}

	cfg.Redis = RedisConfig{
		Host:     optDefault("REDIS_HOST", "localhost"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      optSeconds("REDIS_TTL", 600*time.Second),
	}

	cfg.Auth = AuthConfig{
		AdminPasswordHash: opt("ADMIN_PASSWORD_HASH"),
		JWTAccessSecret:   opt("JWT_ACCESS_SECRET"),
		JWTAccessExpires:  optSeconds("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// AdminEnabled reports whether the admin endpoints can issue tokens.
func (a AuthConfig) AdminEnabled() bool {
	return a.AdminPasswordHash != "" && a.JWTAccessSecret != ""
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
