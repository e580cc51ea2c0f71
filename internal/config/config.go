package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/schoolhub/classroom/internal/models"
)

type Config struct {
	DB_HOST     string
	DB_PORT     string
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string

	ES_URL      string
	ES_USER     string
	ES_PASSWORD string

	ACCESS_SECRET  string
	REFRESH_SECRET string

	KAFKA_ADDRESS string
	HTTP_ADDR     string
	LOG_LEVEL     string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		DB_HOST:        os.Getenv("DB_HOST"),
		DB_PORT:        os.Getenv("DB_PORT"),
		DB_USER:        os.Getenv("DB_USER"),
		DB_PASSWORD:    os.Getenv("DB_PASSWORD"),
		DB_NAME:        os.Getenv("DB_NAME"),
		ES_URL:         os.Getenv("ES_URL"),
		ES_USER:        os.Getenv("ES_USER"),
		ES_PASSWORD:    os.Getenv("ES_PASSWORD"),
		ACCESS_SECRET:  os.Getenv("ACCESS_SECRET"),
		REFRESH_SECRET: os.Getenv("REFRESH_SECRET"),
		KAFKA_ADDRESS:  os.Getenv("KAFKA_ADDRESS"),
		HTTP_ADDR:      envDefault("HTTP_ADDR", ":8000"),
		LOG_LEVEL:      envDefault("LOG_LEVEL", "info"),
	}

	if err := config.validateSecrets(); err != nil {
		return nil, err
	}

	return config, nil
}

// The two signing keys are the only thing keeping access and refresh
// tokens apart, so both must be set and they must differ.
func (c *Config) validateSecrets() error {
	if c.ACCESS_SECRET == "" {
		return errors.New("ACCESS_SECRET is required")
	}
	if c.REFRESH_SECRET == "" {
		return errors.New("REFRESH_SECRET is required")
	}
	if c.ACCESS_SECRET == c.REFRESH_SECRET {
		return errors.New("ACCESS_SECRET and REFRESH_SECRET must not be equal")
	}
	return nil
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DB_USER, cfg.DB_PASSWORD, cfg.DB_HOST, cfg.DB_PORT, cfg.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("database connect: %w", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Task{},
		&models.Achievement{},
		&models.UserRoom{},
		&models.UserAchievement{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
