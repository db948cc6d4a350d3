package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime settings for the service.
type Config struct {
	Port       string
	DBPath     string
	LogLevel   string
	JWTSecret  string
	CORSOrigin string
}

const (
	defaultPort       = "8080"
	defaultDBPath     = "studenthub.db"
	defaultLogLevel   = "info"
	defaultCORSOrigin = "http://localhost:3000"
)

// Load reads configs/config.yml, overlays environment variables and
// validates the result. A missing config file is tolerated (env-only
// deployments), a missing JWT secret is not: tokens signed with a known
// default would be forgeable, so startup refuses to proceed without one.
func Load() (*Config, error) {
	// .env is optional; real env vars win over file values.
	_ = godotenv.Load()

	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	viper.AutomaticEnv()
	bindEnvKeys()
	setDefaults()

	cfg := &Config{
		Port:       viper.GetString("port"),
		DBPath:     viper.GetString("db.path"),
		LogLevel:   viper.GetString("log.level"),
		JWTSecret:  viper.GetString("jwt.secret"),
		CORSOrigin: viper.GetString("cors.origin"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt.secret is not set: provide JWT_SECRET or jwt.secret in configs/config.yml")
	}

	return cfg, nil
}

func bindEnvKeys() {
	_ = viper.BindEnv("port", "PORT")
	_ = viper.BindEnv("db.path", "DB_PATH")
	_ = viper.BindEnv("log.level", "LOG_LEVEL")
	_ = viper.BindEnv("jwt.secret", "JWT_SECRET")
	_ = viper.BindEnv("cors.origin", "CORS_ORIGIN")
}

func setDefaults() {
	viper.SetDefault("port", defaultPort)
	viper.SetDefault("db.path", defaultDBPath)
	viper.SetDefault("log.level", defaultLogLevel)
	viper.SetDefault("cors.origin", defaultCORSOrigin)
}
