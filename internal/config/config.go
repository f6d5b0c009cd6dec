package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Backend names accepted by GATELOG_BACKEND.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
	BackendMemory = "memory"
)

type Config struct {
	HTTPAddr string
	GRPCAddr string // empty disables the gRPC health listener

	Env      string // "dev" | "prod"
	LogLevel string
	Timezone *time.Location

	// Persistence
	Backend     string // "local" | "remote" | "memory"
	DBPath      string // e.g. "./data/gatelog.db"
	DatabaseDSN string // Postgres DSN for the remote backend
	Seed        bool   // seed demo persons into an empty local store

	// Auth; empty secret leaves /v1 open
	JWTSecret string

	// Change notifications; empty broker disables them
	MQTTBroker   string
	MQTTTopic    string
	MQTTClientID string

	// Export archive; empty bucket disables it
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	// Log retention
	LogRetentionDays   int // 0 = keep forever
	PruneIntervalHours int // how often the pruner runs (default 6)
}

func FromEnv() Config {
	env := strings.ToLower(getenvDefault("GATELOG_ENV", "dev"))
	if env != "dev" && env != "prod" {
		// fail-soft: treat unknown as dev
		env = "dev"
	}

	backend := strings.ToLower(getenvDefault("GATELOG_BACKEND", BackendLocal))
	switch backend {
	case BackendLocal, BackendRemote, BackendMemory:
	default:
		backend = BackendLocal
	}

	return Config{
		HTTPAddr: getenvDefault("GATELOG_HTTP_ADDR", ":8080"),
		GRPCAddr: strings.TrimSpace(os.Getenv("GATELOG_GRPC_ADDR")),

		Env:      env,
		LogLevel: getenvDefault("GATELOG_LOG_LEVEL", "info"),
		Timezone: getenvLocation("GATELOG_TZ"),

		Backend:     backend,
		DBPath:      getenvDefault("GATELOG_DB_PATH", "./data/gatelog.db"),
		DatabaseDSN: strings.TrimSpace(os.Getenv("GATELOG_DATABASE_DSN")),
		Seed:        getenvBool("GATELOG_SEED", env == "dev"),

		JWTSecret: os.Getenv("GATELOG_JWT_SECRET"),

		MQTTBroker:   strings.TrimSpace(os.Getenv("GATELOG_MQTT_BROKER")),
		MQTTTopic:    strings.TrimSuffix(getenvDefault("GATELOG_MQTT_TOPIC", "gatelog/events"), "/"),
		MQTTClientID: getenvDefault("GATELOG_MQTT_CLIENT_ID", "gatelog-server"),

		S3Bucket:    strings.TrimSpace(os.Getenv("GATELOG_S3_BUCKET")),
		S3Region:    getenvDefault("GATELOG_S3_REGION", "us-east-1"),
		S3Endpoint:  strings.TrimSpace(os.Getenv("GATELOG_S3_ENDPOINT")),
		S3AccessKey: os.Getenv("GATELOG_S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("GATELOG_S3_SECRET_KEY"),

		LogRetentionDays:   getenvInt("GATELOG_LOG_RETENTION_DAYS", 0),
		PruneIntervalHours: getenvInt("GATELOG_PRUNE_INTERVAL_HOURS", 6),
	}
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// getenvLocation loads an IANA zone name; unset or unknown means local time.
func getenvLocation(key string) *time.Location {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(v)
	if err != nil {
		return time.Local
	}
	return loc
}
