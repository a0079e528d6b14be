package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	PostgresURL string
	MongoURL    string
	DBType      string
	Port        string

	JWTSecret string

	R2AccountID string
	R2AccessKey string
	R2SecretKey string
	R2Bucket    string
	R2PublicURL string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		PostgresURL: os.Getenv("POSTGRES_URL"),
		MongoURL:    os.Getenv("MONGO_URL"),
		DBType:      os.Getenv("DB_TYPE"),
		Port:        os.Getenv("PORT"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		R2AccountID: os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKey: os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2Bucket:    os.Getenv("R2_BUCKET"),
		R2PublicURL: os.Getenv("R2_PUBLIC_URL"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBType == "" {
		cfg.DBType = "postgres"
	}
	return cfg
}
