package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken  string        `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN          string        `mapstructure:"DB_DSN"`
	Environment    string        `mapstructure:"ENV"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	AlarmsFile     string        `mapstructure:"ALARMS_FILE"`
	MigrationsPath string        `mapstructure:"MIGRATIONS_PATH"`
	SoundsDir      string        `mapstructure:"SOUNDS_DIR"`
	PlayerCommand  string        `mapstructure:"PLAYER_COMMAND"`
	TickInterval   time.Duration `mapstructure:"TICK_INTERVAL"`
	AutoStop       time.Duration `mapstructure:"AUTO_STOP"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:          os.Getenv("DB_DSN"),
		Environment:    getEnv("ENV", "development"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		AlarmsFile:     getEnv("ALARMS_FILE", "alarms.json"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		SoundsDir:      getEnv("SOUNDS_DIR", "sounds"),
		PlayerCommand:  getEnv("PLAYER_COMMAND", "ffplay"),
	}

	var err error
	if cfg.TickInterval, err = getDuration("TICK_INTERVAL", time.Second); err != nil {
		return nil, err
	}
	if cfg.AutoStop, err = getDuration("AUTO_STOP", 30*time.Second); err != nil {
		return nil, err
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

// UseDatabase хранить ли напоминания в PostgreSQL вместо файла
func (c *Config) UseDatabase() bool {
	return c.DBDSN != ""
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, v)
	}
	return d, nil
}
