package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	MongoURI        string
	MongoDatabase   string
	DataDir         string
	JWTSecret       string
	JWTExpiration   time.Duration
	StripeSecretKey string
	SendGridAPIKey  string
	MailFromEmail   string
	ContactFeeCents int64
	NotifyInterval  time.Duration
}

func Load() *Config {
	// Local development reads a .env file; deployed environments set real env vars.
	_ = godotenv.Load()

	return &Config{
		ServerAddress:   getEnv("SERVER_ADDRESS", ":8080"),
		MongoURI:        getEnv("MONGODB_URI", ""),
		MongoDatabase:   getEnv("MONGODB_DATABASE", "Matrimony"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		JWTSecret:       getEnv("ACCESS_TOKEN_SECRET", "your-secret-key-change-in-production"),
		JWTExpiration:   2 * time.Hour,
		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		SendGridAPIKey:  getEnv("SENDGRID_API_KEY", ""),
		MailFromEmail:   getEnv("MAIL_FROM_EMAIL", ""),
		ContactFeeCents: 500,
		NotifyInterval:  time.Minute,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
