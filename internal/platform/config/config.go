package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Rule document sources.
const (
	RulesSourceFile     = "file"
	RulesSourcePostgres = "postgres"
	RulesSourceRedis    = "redis"
)

// Config captures process level configuration. CLI flags override it.
type Config struct {
	Root        string
	RulesSource string
	RulesPath   string
	Database    DatabaseConfig
	Redis       RedisConfig
	Log         LogConfig
	Trace       TraceConfig
}

// DatabaseConfig holds the PostgreSQL connection settings. An empty URL
// means PostgreSQL is not used.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds the Redis connection settings. An empty URL means Redis
// is not used.
type RedisConfig struct {
	URL          string
	RulesKey     string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// TraceConfig selects the span exporter: "none" or "stdout".
type TraceConfig struct {
	Exporter string
}

// FromEnv builds a Config from environment variables. Unset or unparsable
// values fall back to defaults.
func FromEnv() Config {
	root := getEnvString("SAKU_ROOT", "")
	if root == "" {
		if wd, err := os.Getwd(); err == nil {
			root = wd
		} else {
			root = "."
		}
	}

	return Config{
		Root:        root,
		RulesSource: getEnvString("SAKU_RULES_SOURCE", RulesSourceFile),
		RulesPath:   getEnvString("SAKU_RULES_PATH", filepath.Join(root, "rules", "rules.yaml")),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getEnvInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			RulesKey:     getEnvString("SAKU_REDIS_RULES_KEY", "saku:rules"),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Log: LogConfig{
			Level:  getEnvString("LOG_LEVEL", "info"),
			Format: getEnvString("LOG_FORMAT", "text"),
		},
		Trace: TraceConfig{
			Exporter: getEnvString("SAKU_TRACE_EXPORTER", "none"),
		},
	}
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.RulesSource {
	case RulesSourceFile:
		if c.RulesPath == "" {
			return fmt.Errorf("rules path is required for the %s rules source", c.RulesSource)
		}
	case RulesSourcePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s rules source", c.RulesSource)
		}
	case RulesSourceRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("REDIS_URL is required for the %s rules source", c.RulesSource)
		}
	default:
		return fmt.Errorf("unknown rules source %q", c.RulesSource)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	switch c.Trace.Exporter {
	case "", "none", "stdout":
	default:
		return fmt.Errorf("unknown trace exporter %q", c.Trace.Exporter)
	}
	return nil
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
