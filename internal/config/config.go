package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	// DBMaxOpenConns caps the pool; zero leaves database/sql's default.
	DBMaxOpenConns int

	AppPort string
	AppEnv  string

	JWTSecret string
	TokenTTL  time.Duration

	RedisAddr string
	CacheTTL  time.Duration

	// EventsDriver selects the order event publisher: kafka, rabbitmq or empty for none.
	EventsDriver string
	KafkaBrokers []string
	KafkaTopic   string
	AMQPURL      string

	HFAPIKey string
	HFModel  string

	TrackingBaseURL   string
	CORSOrigins       []string
	InternalSecretKey string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            os.Getenv("DB_PORT"),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		DBMaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
		AppPort:           getEnv("APP_PORT", "5000"),
		AppEnv:            os.Getenv("APP_ENV"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          getDuration("TOKEN_TTL", 2*time.Hour),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		CacheTTL:          getDuration("CACHE_TTL", 5*time.Minute),
		EventsDriver:      strings.ToLower(os.Getenv("EVENTS_DRIVER")),
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:        getEnv("KAFKA_TOPIC", "orders"),
		AMQPURL:           os.Getenv("AMQP_URL"),
		HFAPIKey:          os.Getenv("HF_API_KEY"),
		HFModel:           getEnv("HF_MODEL", "SamLowe/roberta-base-go_emotions"),
		TrackingBaseURL:   getEnv("TRACKING_BASE_URL", "http://localhost:3000"),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		InternalSecretKey: os.Getenv("INTERNAL_SECRET_KEY"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	return cfg
}

// LoadDatabaseConfig reads only the DB_* variables, for the command line tools.
func LoadDatabaseConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		AppEnv:     os.Getenv("APP_ENV"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("invalid integer for %s (%q), using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid duration for %s (%q), using %s", key, v, fallback)
		return fallback
	}
	return d
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
