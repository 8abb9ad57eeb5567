package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends accepted by NEUROSYNC_STORAGE.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config captures environment driven configuration values for the NeuroSync client core.
type Config struct {
	HTTPPort      int
	Storage       string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	AMQPURL       string
	EventsQueue   string
	ColorScheme   string
	CatalogPath   string
	LogLevel      string
	LogFormat     string
}

// LoadEnvFiles merges the given dotenv files into the process environment
// without overriding variables that are already set. Missing files are skipped.
func LoadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("falha ao ler arquivo de ambiente %s: %w", path, err)
		}
	}
	return nil
}

// Load parses configuration values from the current process environment.
//
// Optional fields fall back to defaults. Invalid values and values required by
// the selected storage backend are collected and reported together.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:    8080,
		Storage:     StorageSQLite,
		SQLitePath:  "neurosync.db",
		RedisPrefix: "neurosync",
		EventsQueue: "neurosync.reservations",
		LogLevel:    "info",
		LogFormat:   "json",
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := env("NEUROSYNC_HTTP_PORT"); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 || port > 65535 {
			invalid = append(invalid, "NEUROSYNC_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if backend := strings.ToLower(env("NEUROSYNC_STORAGE")); backend != "" {
		switch backend {
		case StorageSQLite, StorageRedis, StorageMemory:
			cfg.Storage = backend
		default:
			invalid = append(invalid, "NEUROSYNC_STORAGE")
		}
	}

	if path := env("NEUROSYNC_SQLITE_PATH"); path != "" {
		cfg.SQLitePath = path
	}

	cfg.RedisAddr = env("NEUROSYNC_REDIS_ADDR")
	if cfg.Storage == StorageRedis && cfg.RedisAddr == "" {
		missing = append(missing, "NEUROSYNC_REDIS_ADDR")
	}
	cfg.RedisPassword = os.Getenv("NEUROSYNC_REDIS_PASSWORD")
	if dbValue := env("NEUROSYNC_REDIS_DB"); dbValue != "" {
		db, err := strconv.Atoi(dbValue)
		if err != nil || db < 0 {
			invalid = append(invalid, "NEUROSYNC_REDIS_DB")
		} else {
			cfg.RedisDB = db
		}
	}
	if prefix := env("NEUROSYNC_REDIS_PREFIX"); prefix != "" {
		cfg.RedisPrefix = prefix
	}

	cfg.AMQPURL = env("NEUROSYNC_AMQP_URL")
	if queue := env("NEUROSYNC_EVENTS_QUEUE"); queue != "" {
		cfg.EventsQueue = queue
	}

	if scheme := strings.ToLower(env("NEUROSYNC_COLOR_SCHEME")); scheme != "" {
		switch scheme {
		case "light", "dark":
			cfg.ColorScheme = scheme
		default:
			invalid = append(invalid, "NEUROSYNC_COLOR_SCHEME")
		}
	}

	cfg.CatalogPath = env("NEUROSYNC_CATALOG_PATH")

	if level := strings.ToLower(env("NEUROSYNC_LOG_LEVEL")); level != "" {
		switch level {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = level
		default:
			invalid = append(invalid, "NEUROSYNC_LOG_LEVEL")
		}
	}
	if format := strings.ToLower(env("NEUROSYNC_LOG_FORMAT")); format != "" {
		switch format {
		case "json", "text":
			cfg.LogFormat = format
		default:
			invalid = append(invalid, "NEUROSYNC_LOG_FORMAT")
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("variáveis de ambiente obrigatórias não definidas: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("valores inválidos nas variáveis de ambiente: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
