package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Origins allowed to call the JSON surface with credentials. Empty allows
	// any origin without credentials.
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Remote marketplace API.
	APIURL     string        `mapstructure:"API_URL"`
	APITimeout time.Duration `mapstructure:"API_TIMEOUT"`

	// Session configuration. SessionStore is one of "redis", "mongo" or "memory".
	SessionSecret string        `mapstructure:"SESSION_SECRET"`
	SessionTTL    time.Duration `mapstructure:"SESSION_TTL"`
	SessionStore  string        `mapstructure:"SESSION_STORE"`
	CSRFKey       string        `mapstructure:"CSRF_KEY"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// MongoDB configuration, only used by the mongo session store.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Tracing.
	OtelEnabled       bool   `mapstructure:"OTEL_ENABLED"`
	OtelCollectorAddr string `mapstructure:"OTEL_COLLECTOR_ADDR"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("CORS_ORIGINS", []string{})
	viper.SetDefault("API_URL", "http://localhost:5000/api")
	viper.SetDefault("API_TIMEOUT", time.Duration(0))
	viper.SetDefault("SESSION_SECRET", "")
	viper.SetDefault("SESSION_TTL", 12*time.Hour)
	viper.SetDefault("SESSION_STORE", "redis")
	viper.SetDefault("CSRF_KEY", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "servicehub")
	viper.SetDefault("OTEL_ENABLED", false)
	viper.SetDefault("OTEL_COLLECTOR_ADDR", "localhost:4317")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if AppConfig.SessionSecret == "" {
		if IsProduction() {
			log.Fatalf("SESSION_SECRET must be set in production")
		}
		log.Println("SESSION_SECRET not set, using an insecure development secret")
		AppConfig.SessionSecret = "servicehub-dev-secret"
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
