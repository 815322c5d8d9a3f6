package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// defaultAdminPassword matches the storefront's historical hardcoded secret.
// Override ADMIN_PASSWORD (or set ADMIN_PASSWORD_HASH) per deployment.
const defaultAdminPassword = "omkar2024"

type Config struct {
	HTTPAddr          string
	SQLitePath        string
	DatabaseURL       string
	RedisURL          string
	AdminPassword     string
	AdminPasswordHash string
	JWTSecret         string
	KafkaAddress      string
	KafkaTopic        string
	ESURL             string
	ESUser            string
	ESPassword        string
	ESIndex           string
	LogLevel          string
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v, using system environment", err)
	}

	cfg := &Config{
		HTTPAddr:          os.Getenv("HTTP_ADDR"),
		SQLitePath:        os.Getenv("SQLITE_PATH"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		KafkaAddress:      os.Getenv("KAFKA_ADDRESS"),
		KafkaTopic:        os.Getenv("KAFKA_TOPIC"),
		ESURL:             os.Getenv("ES_URL"),
		ESUser:            os.Getenv("ES_USER"),
		ESPassword:        os.Getenv("ES_PASSWORD"),
		ESIndex:           os.Getenv("ES_INDEX"),
		LogLevel:          os.Getenv("LOG_LEVEL"),
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "flowershop.db"
	}
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		cfg.AdminPassword = defaultAdminPassword
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "flower-shop-dev-secret"
	}
	if cfg.KafkaTopic == "" {
		cfg.KafkaTopic = "catalog_events"
	}
	if cfg.ESIndex == "" {
		cfg.ESIndex = "products"
	}

	return cfg
}
