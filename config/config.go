package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

const (
	DriverRedis    = "redis"
	DriverMongo    = "mongo"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port           int           `yaml:"port"`
	Mode           string        `yaml:"mode"`
	StoreDriver    string        `yaml:"store_driver"`
	RedisURI       string        `yaml:"redis_uri"`
	RedisPassword  string        `yaml:"redis_password"`
	RedisDB        int           `yaml:"redis_db"`
	MongoURI       string        `yaml:"mongo_uri"`
	MongoDatabase  string        `yaml:"mongo_database"`
	DatabaseURL    string        `yaml:"database_url"`
	JWTSecret      string        `yaml:"jwt_secret"`
	TokenTTL       time.Duration `yaml:"token_ttl"`
	EnforceExpiry  bool          `yaml:"enforce_expiry"`
	MaxImageBytes  int64         `yaml:"max_image_bytes"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// CORSOrigins lists the browser origins allowed to send credentials.
	// Empty means any origin, without credentials.
	CORSOrigins []string `yaml:"cors_origins"`
}

func Default() *Config {
	return &Config{
		Port:           5000,
		Mode:           ModeProduction,
		StoreDriver:    DriverRedis,
		RedisURI:       "localhost:6379",
		MongoURI:       "mongodb://localhost:27017",
		MongoDatabase:  "Voting_Details",
		DatabaseURL:    "file:voting.db",
		TokenTTL:       24 * time.Hour,
		EnforceExpiry:  true,
		MaxImageBytes:  5 << 20,
		RequestTimeout: 10 * time.Second,
	}
}

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("No .env file found, using environment variables")
	}
}

// Load builds the configuration from defaults, the YAML file named by
// VOTING_CONFIG and then the environment, later sources winning.
func Load() (*Config, error) {
	LoadEnv()

	cfg := Default()
	if path := os.Getenv("VOTING_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Mode = GetEnv("APP_ENV", c.Mode)
	c.StoreDriver = GetEnv("STORE_DRIVER", c.StoreDriver)
	c.RedisURI = GetEnv("REDIS_URI", c.RedisURI)
	c.RedisPassword = GetEnv("REDIS_PASSWORD", c.RedisPassword)
	c.MongoURI = GetEnv("MONGO_URI", c.MongoURI)
	c.MongoDatabase = GetEnv("MONGO_DATABASE", c.MongoDatabase)
	c.DatabaseURL = GetEnv("DATABASE_URL", c.DatabaseURL)
	c.JWTSecret = GetEnv("JWT_SECRET", c.JWTSecret)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}

	var err error
	if c.Port, err = envInt("PORT", c.Port); err != nil {
		return err
	}
	if c.RedisDB, err = envInt("REDIS_DB", c.RedisDB); err != nil {
		return err
	}
	if c.TokenTTL, err = envDuration("TOKEN_TTL", c.TokenTTL); err != nil {
		return err
	}
	if c.RequestTimeout, err = envDuration("REQUEST_TIMEOUT", c.RequestTimeout); err != nil {
		return err
	}
	if v := os.Getenv("ENFORCE_EXPIRY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid ENFORCE_EXPIRY %q: %w", v, err)
		}
		c.EnforceExpiry = b
	}
	if v := os.Getenv("MAX_IMAGE_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_IMAGE_BYTES %q: %w", v, err)
		}
		c.MaxImageBytes = n
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Port))
	}
	if c.Mode != ModeDevelopment && c.Mode != ModeProduction {
		errs = append(errs, fmt.Errorf("invalid mode %q", c.Mode))
	}
	switch c.StoreDriver {
	case DriverRedis, DriverMongo, DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.StoreDriver))
	}
	if c.JWTSecret == "" && c.Mode == ModeProduction {
		errs = append(errs, errors.New("JWT_SECRET is required in production"))
	}
	if c.MaxImageBytes <= 0 {
		errs = append(errs, errors.New("max image bytes must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) Development() bool { return c.Mode == ModeDevelopment }

func (c *Config) Addr() string { return ":" + strconv.Itoa(c.Port) }

func GetEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
