package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Config struct {
	App         AppConfig
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Storage     StorageConfig
	Recommender RecommenderConfig
	Tickets     TicketConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port           string
	AllowedOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

// StorageConfig selects where the catalog, assignments and maintenance
// records live.
type StorageConfig struct {
	Backend         string
	CatalogSeedPath string
}

type RecommenderConfig struct {
	DatasetPath  string
	Neighbors    int
	TestFraction float64
	SplitSeed    int64
}

type TicketConfig struct {
	Store string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	neighbors, err := getEnvInt("RECO_NEIGHBORS", 5)
	if err != nil {
		return nil, err
	}

	testFraction, err := getEnvFloat("RECO_TEST_FRACTION", 0.2)
	if err != nil {
		return nil, err
	}

	seed, err := getEnvInt("RECO_SPLIT_SEED", 42)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Laptop Desk API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "laptops"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Storage: StorageConfig{
			Backend:         getEnv("STORE_BACKEND", StorePostgres),
			CatalogSeedPath: getEnv("CATALOG_SEED_PATH", ""),
		},
		Recommender: RecommenderConfig{
			DatasetPath:  getEnv("RECO_DATASET_PATH", "train_laptops.csv"),
			Neighbors:    neighbors,
			TestFraction: testFraction,
			SplitSeed:    int64(seed),
		},
		Tickets: TicketConfig{
			Store: getEnv("TICKET_STORE", StoreMemory),
		},
	}

	switch cfg.Storage.Backend {
	case StoreMemory, StorePostgres:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if cfg.UsesPostgres() && cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.Recommender.Neighbors <= 0 {
		return nil, errors.New("RECO_NEIGHBORS must be greater than 0")
	}

	if cfg.Recommender.TestFraction < 0 || cfg.Recommender.TestFraction >= 1 {
		return nil, errors.New("RECO_TEST_FRACTION must be in [0, 1)")
	}

	switch cfg.Tickets.Store {
	case StoreMemory, StorePostgres, StoreRedis:
	default:
		return nil, fmt.Errorf("unknown ticket store %q", cfg.Tickets.Store)
	}

	return cfg, nil
}

// UsesPostgres reports whether any store is backed by the database.
func (c *Config) UsesPostgres() bool {
	return c.Storage.Backend == StorePostgres || c.Tickets.Store == StorePostgres
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return n, nil
}

func getEnvFloat(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return f, nil
}
