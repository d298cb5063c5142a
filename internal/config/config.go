package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is built once in main and passed down; nothing mutates it afterwards.
type Config struct {
	ServerAddr string
	Env        string

	MongoURI    string
	MongoDBName string

	JWTSecret     string
	JWTExpiry     time.Duration
	ResetTokenTTL time.Duration

	S3Bucket       string
	S3Region       string
	PlaybackURLTTL time.Duration

	EmailFrom    string
	SESRegion    string
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		Env:        getEnv("APP_ENV", "development"),

		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: getEnv("MONGO_DB_NAME", "kinostream"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTExpiry:     getDuration("JWT_EXPIRY", 24*time.Hour),
		ResetTokenTTL: time.Hour,

		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		PlaybackURLTTL: getDuration("PLAYBACK_URL_TTL", 4*time.Hour),

		EmailFrom:    getEnv("EMAIL_FROM", "no-reply@kinostream.local"),
		SESRegion:    getEnv("SES_REGION", ""),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/auth/google/callback"),
	}

	log.Println("✅ Config loaded")
	return cfg
}

// IsProduction gates error detail in 500 responses.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
