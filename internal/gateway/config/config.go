package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	Env     string
	Store   StoreConfig
	Archive ArchiveConfig
	Agent   AgentConfig
}

// StoreConfig selects the report/summary store backend. Memory is the
// default; a Postgres DSN or Redis address switches the backend.
type StoreConfig struct {
	PostgresDSN  string
	RedisAddr    string
	CacheEntries int
}

type ArchiveConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type AgentConfig struct {
	Provider string // "fake" or "gemini"
	Model    string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8080", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:    *port,
		Env:     env,
		Store:   loadStoreConfig(),
		Archive: loadArchiveConfig(env),
		Agent:   loadAgentConfig(),
	}, nil
}

func loadStoreConfig() StoreConfig {
	cacheEntries := 1024
	if raw := strings.TrimSpace(os.Getenv("STORE_CACHE_ENTRIES")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cacheEntries = n
		}
	}
	return StoreConfig{
		PostgresDSN:  strings.TrimSpace(os.Getenv("REPORT_STORE_PG_DSN")),
		RedisAddr:    strings.TrimSpace(os.Getenv("REPORT_STORE_REDIS_ADDR")),
		CacheEntries: cacheEntries,
	}
}

func loadArchiveConfig(env string) ArchiveConfig {
	endpoint := resolveArchiveEndpoint(env)
	return ArchiveConfig{
		Enabled:   endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("ARCHIVE_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ARCHIVE_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ARCHIVE_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("ARCHIVE_S3_BUCKET")), "labvoice-reports"),
		UseSSL:    resolveArchiveUseSSL(env),
	}
}

func resolveArchiveEndpoint(env string) string {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return strings.TrimSpace(os.Getenv("ARCHIVE_MINIO_ENDPOINT"))
	}
	return strings.TrimSpace(os.Getenv("ARCHIVE_S3_ENDPOINT"))
}

func resolveArchiveUseSSL(env string) bool {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return false
	}
	raw := strings.TrimSpace(os.Getenv("ARCHIVE_S3_USE_SSL"))
	if raw == "" {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

func loadAgentConfig() AgentConfig {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("AGENT_PROVIDER")))
	if provider != "gemini" {
		provider = "fake"
	}
	return AgentConfig{
		Provider: provider,
		Model:    strings.TrimSpace(os.Getenv("AGENT_MODEL")),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
