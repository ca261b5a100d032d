package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string
	JWTSecret  string

	// Seeded admin account, created at startup when missing.
	AdminUsername string
	AdminPassword string

	// Receipt/product image uploads.
	UploadDir      string
	UploadMaxBytes int64
	PublicBaseURL  string

	// Submission guard knobs. The lockout policy is configuration,
	// not hard-coded behavior.
	GuardThreshold int
	GuardDurations []time.Duration
	GuardStaleness time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    getenv("APP_PORT", "8080"),
		AppEnv:     getenv("APP_ENV", "development"),
		JWTSecret:  os.Getenv("JWT_SECRET"),

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		UploadDir:      getenv("UPLOAD_DIR", "./uploads"),
		UploadMaxBytes: getenvInt64("UPLOAD_MAX_BYTES", 1<<20),
		PublicBaseURL:  getenv("PUBLIC_BASE_URL", "http://localhost:8080"),

		GuardThreshold: int(getenvInt64("GUARD_THRESHOLD", 4)),
		GuardDurations: []time.Duration{30 * time.Second, 60 * time.Second, 120 * time.Second},
		GuardStaleness: time.Duration(getenvInt64("GUARD_STALENESS_SECONDS", 600)) * time.Second,
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
