package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server needs from the environment so main
// stays lean.
type Config struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	TokenTTL      time.Duration
	SessionTTL    time.Duration

	PostgresDSN string
	Redis       RedisConfig
	Kafka       KafkaConfig

	// Bootstrap admin account, created on startup when both are set.
	AdminEmail    string
	AdminPassword string

	AuditBuffer int
}

// RedisConfig holds connection settings for the optional Redis session store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds connection settings for the optional audit topic.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	addr := os.Getenv("MEMORIA_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("MEMORIA_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default; must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	jwtIssuer := os.Getenv("MEMORIA_JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "memoria"
	}

	auditTopic := os.Getenv("MEMORIA_KAFKA_AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "memoria.audit"
	}

	var brokers []string
	if raw := os.Getenv("MEMORIA_KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Config{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		JWTIssuer:     jwtIssuer,
		TokenTTL:      envDuration("MEMORIA_TOKEN_TTL", time.Hour),
		SessionTTL:    envDuration("MEMORIA_SESSION_TTL", 30*24*time.Hour),
		PostgresDSN:   os.Getenv("MEMORIA_POSTGRES_DSN"),
		Redis: RedisConfig{
			URL:          os.Getenv("MEMORIA_REDIS_URL"),
			PoolSize:     envInt("MEMORIA_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("MEMORIA_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("MEMORIA_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("MEMORIA_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("MEMORIA_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:    brokers,
			AuditTopic: auditTopic,
		},
		AdminEmail:    os.Getenv("MEMORIA_ADMIN_EMAIL"),
		AdminPassword: os.Getenv("MEMORIA_ADMIN_PASSWORD"),
		AuditBuffer:   envInt("MEMORIA_AUDIT_BUFFER", 256),
	}
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return fallback
}
