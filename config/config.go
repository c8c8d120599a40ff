package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	Port        string `env:"PORT" env-default:"8080"`
	BindAddress string `env:"BIND_ADDRESS" env-default:"localhost"`
	BaseURL     string `env:"BASE_URL" env-default:"http://localhost:8080"`
	DBHost      string `env:"DB_HOST" env-default:"localhost"`
	DBPort      string `env:"DB_PORT" env-default:"5432"`
	DBUser      string `env:"DB_USER" env-default:"surveypro"`
	DBPassword  string `env:"DB_PASSWORD" env-default:"surveypro123"`
	DBName      string `env:"DB_NAME" env-default:"surveypro"`
	RedisHost   string `env:"REDIS_HOST" env-default:"localhost"`
	RedisPort   string `env:"REDIS_PORT" env-default:"6379"`
	JWTSecret   string `env:"JWT_SECRET" env-default:"change-me-in-production"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`
}

func Load() (*Config, error) {
	// A .env file is a development convenience, not a requirement.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func InitRedis(cfg *Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
	})
}
