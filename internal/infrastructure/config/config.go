package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// Data locations
	CatalogFile string // exam catalog, question-file paths resolve relative to it
	SourcesDir  string // question files, e.g. "sources"
	SecretsDir  string // per-secret storage folders
	SecretsFile string // registry of valid access secrets
	SessionDB   string // SQLite file for login sessions

	DefaultExam     string
	SessionLifetime time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:   mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout: mustGetDuration("SHUTDOWN_TIMEOUT"),
		CatalogFile:     getenvDefault("EXAM_CONFIG", "exam_config.json"),
		SourcesDir:      getenvDefault("SOURCES_DIR", "sources"),
		SecretsDir:      getenvDefault("SECRETS_DIR", "secrets"),
		SecretsFile:     getenvDefault("SECRETS_FILE", "secrets_config.json"),
		SessionDB:       getenvDefault("SESSION_DB", "trainer_sessions.db"),
		DefaultExam:     getenvDefault("DEFAULT_EXAM", "1C:Project Manager"),
		SessionLifetime: getDurationDefault("SESSION_LIFETIME", 30*24*time.Hour),
	}
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}
