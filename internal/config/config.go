package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every knob the service needs. It is built once in main and
// passed down; nothing reads the environment after startup.
type Config struct {
	Port        int `mapstructure:"PORT"`
	MetricsPort int `mapstructure:"METRICS_PORT"`

	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	NATSURL       string `mapstructure:"NATS_URL"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`
	SMTPSender   string `mapstructure:"SMTP_SENDER_NAME"`

	RegistryBaseURL string `mapstructure:"REGISTRY_BASE_URL"`
	RegistryAPIKey  string `mapstructure:"REGISTRY_API_KEY"`

	CORSAllowOrigin string `mapstructure:"CORS_ALLOW_ORIGIN"`
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environments set variables directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", 8080)
	viper.SetDefault("METRICS_PORT", 0)
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "rappel")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("NATS_URL", "")
	viper.SetDefault("JWT_SECRET", "your-secret-key")
	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_FROM", "no-reply@rappel.fr")
	viper.SetDefault("SMTP_SENDER_NAME", "Rappel")
	viper.SetDefault("REGISTRY_BASE_URL", "https://api.kipoced.com/v1")
	viper.SetDefault("REGISTRY_API_KEY", "")
	viper.SetDefault("CORS_ALLOW_ORIGIN", "*")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
