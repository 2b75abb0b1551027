package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Security SecurityConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	AllowedOrigin   string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host             string
	Port             string
	Name             string
	User             string
	Password         string
	SSL              bool
	MaxConns         int32
	StatementTimeout time.Duration
	AutoMigrate      bool
}

type SecurityConfig struct {
	BcryptCost int
}

// LoadConfig reads .env when present, then lets the process environment
// override any key.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "movie-reviews")
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("FRONTEND_URL", "*")
	viper.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSL", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_STATEMENT_TIMEOUT", "5s")
	viper.SetDefault("DB_AUTO_MIGRATE", false)
	viper.SetDefault("BCRYPT_COST", 10)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	config := &Config{
		App: AppConfig{
			Name:            viper.GetString("APP_NAME"),
			Port:            viper.GetString("PORT"),
			Debug:           viper.GetBool("DEBUG"),
			LogPath:         viper.GetString("LOG_PATH"),
			AllowedOrigin:   viper.GetString("FRONTEND_URL"),
			ShutdownTimeout: viper.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:             viper.GetString("DB_HOST"),
			Port:             viper.GetString("DB_PORT"),
			Name:             viper.GetString("DB_NAME"),
			User:             viper.GetString("DB_USER"),
			Password:         viper.GetString("DB_PASSWORD"),
			SSL:              viper.GetBool("DB_SSL"),
			MaxConns:         viper.GetInt32("DB_MAX_CONNS"),
			StatementTimeout: viper.GetDuration("DB_STATEMENT_TIMEOUT"),
			AutoMigrate:      viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Security: SecurityConfig{
			BcryptCost: viper.GetInt("BCRYPT_COST"),
		},
	}

	return config, nil
}
