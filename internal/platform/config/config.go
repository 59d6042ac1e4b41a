package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures process-level configuration. Values come from the
// environment so main stays lean; every external collaborator is optional
// and the service degrades to in-memory behavior when one is absent.
type Config struct {
	Addr          string
	AdminToken    string
	JWTSigningKey string
	AdminAccount  string

	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig

	EventBufferSize int
}

// PostgresConfig configures the event store database.
type PostgresConfig struct {
	DSN string
}

// RedisConfig configures the notification pub/sub client.
type RedisConfig struct {
	URL          string
	Channel      string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the notification topic producer.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Config from environment variables with development
// defaults.
func FromEnv() Config {
	cfg := Config{
		Addr:          getenv("NAMEREG_ADDR", ":8080"),
		AdminToken:    getenv("NAMEREG_ADMIN_TOKEN", ""),
		JWTSigningKey: getenv("NAMEREG_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		AdminAccount:  getenv("NAMEREG_ADMIN_ACCOUNT", ""),
		Postgres: PostgresConfig{
			DSN: getenv("NAMEREG_DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			URL:          getenv("NAMEREG_REDIS_URL", ""),
			Channel:      getenv("NAMEREG_REDIS_CHANNEL", "namereg.events"),
			PoolSize:     getenvInt("NAMEREG_REDIS_POOL_SIZE", 10),
			MinIdleConns: getenvInt("NAMEREG_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Topic: getenv("NAMEREG_KAFKA_TOPIC", "namereg.events"),
		},
		EventBufferSize: getenvInt("NAMEREG_EVENT_BUFFER_SIZE", 1024),
	}

	if brokers := getenv("NAMEREG_KAFKA_BROKERS", ""); brokers != "" {
		for _, broker := range strings.Split(brokers, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				cfg.Kafka.Brokers = append(cfg.Kafka.Brokers, broker)
			}
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
