package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	StorageDriver string
	SQLitePath    string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	BrandName string
	Industry  string

	CacheTTLSeconds  int
	SnapshotTTLHours int
	ProductCount     int
	MaxConcurrency   int

	CSVInputPath  string
	OCRInputPath  string
	CSVExportPath string
	WatchDir      string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		StorageDriver: getEnv("STORAGE_DRIVER", "sqlite"),
		SQLitePath:    getEnv("SQLITE_PATH", "./data/snapshots.db"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "brandintel"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "brandintel123"),
		PostgresDB:       getEnv("POSTGRES_DB", "brandintel_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		BrandName: getEnv("BRAND_NAME", "SAÏDA"),
		Industry:  getEnv("INDUSTRY", "Agroalimentaire"),

		CacheTTLSeconds:  getEnvInt("CACHE_TTL_SECONDS", 300),
		SnapshotTTLHours: getEnvInt("SNAPSHOT_TTL_HOURS", 24),
		ProductCount:     getEnvInt("PRODUCT_COUNT", 50),
		MaxConcurrency:   getEnvInt("MAX_CONCURRENCY", 3),

		CSVInputPath:  getEnv("CSV_INPUT_PATH", ""),
		OCRInputPath:  getEnv("OCR_INPUT_PATH", ""),
		CSVExportPath: getEnv("CSV_EXPORT_PATH", ""),
		WatchDir:      getEnv("WATCH_DIR", ""),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
