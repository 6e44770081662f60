package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Storage backends
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Config holds all configuration for dues
type Config struct {
	DataDir       string
	Backend       string
	SQLitePath    string
	PostgresDSN   string
	Redis         RedisConfig
	LogLevel      string
	LogFile       string // "-" logs to stderr
	DeriveOverdue bool
}

// RedisConfig holds Redis backend configuration
type RedisConfig struct {
	Address  string
	Password string
	DB       int
	Prefix   string
}

// Load reads configuration from defaults, <data_dir>/config.yaml,
// ./.env and DUES_* environment variables, later sources winning.
func Load() (*Config, error) {
	return load(".env")
}

func load(dotEnvPath string) (*Config, error) {
	// load .env if it exists (ignore if it does not)
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "config: load %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "config: stat %s", dotEnvPath)
	}

	dataDir, err := defaultDataDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("data_dir", dataDir)
	v.SetDefault("backend", BackendSQLite)
	v.SetDefault("sqlite_path", "")
	v.SetDefault("postgres_dsn", "")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_prefix", "dues:")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("derive_overdue", true)

	v.SetEnvPrefix("DUES")
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(v.GetString("data_dir"))
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "config: read config file")
		}
	}

	cfg := &Config{
		DataDir:     v.GetString("data_dir"),
		Backend:     v.GetString("backend"),
		SQLitePath:  v.GetString("sqlite_path"),
		PostgresDSN: v.GetString("postgres_dsn"),
		Redis: RedisConfig{
			Address:  v.GetString("redis_addr"),
			Password: v.GetString("redis_password"),
			DB:       v.GetInt("redis_db"),
			Prefix:   v.GetString("redis_prefix"),
		},
		LogLevel:      v.GetString("log_level"),
		LogFile:       v.GetString("log_file"),
		DeriveOverdue: v.GetBool("derive_overdue"),
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = filepath.Join(cfg.DataDir, "dues.db")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "dues.log")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendMemory:
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return errors.New("postgres backend requires DUES_POSTGRES_DSN")
		}
	case BackendRedis:
		if c.Redis.Address == "" {
			return errors.New("redis backend requires DUES_REDIS_ADDR")
		}
	default:
		return errors.Errorf("unknown backend: %q", c.Backend)
	}
	return nil
}

// defaultDataDir returns the XDG data directory for dues
func defaultDataDir() (string, error) {
	// Use XDG data directory or fallback to home directory
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "config: resolve home dir")
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "dues"), nil
}
