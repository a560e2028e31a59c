package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Firestore FirestoreConfig
	Assets    AssetsConfig
	Mail      MailConfig
	Session   SessionConfig
	Redis     RedisConfig
	Contact   ContactConfig
	App       AppConfig
}

type ServerConfig struct {
	Port               string
	Debug              bool
	TrustedProxies     []string
	CORSAllowedOrigins []string
}

// FirestoreConfig locates the project collection. Credentials holds either a
// path to a service account file or the JSON document itself.
type FirestoreConfig struct {
	Credentials string
	ProjectID   string
	Collection  string
	Timeout     time.Duration
}

type AssetsConfig struct {
	BaseURL string
	Bucket  string
}

type MailConfig struct {
	Host      string
	Port      int
	UseTLS    bool
	Username  string
	Password  string
	Sender    string
	Recipient string
	Timeout   time.Duration
}

// Configured reports whether enough is set to attempt delivery.
func (m MailConfig) Configured() bool {
	return m.Host != "" && m.Sender != "" && m.Recipient != ""
}

type SessionConfig struct {
	Secret string
}

type RedisConfig struct {
	URL string
}

type ContactConfig struct {
	RateLimit  int
	RateWindow time.Duration
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	username := getEnv("MAIL_USERNAME", "")

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "5000"),
			Debug:              getEnvAsBool("DEBUG", false) || getEnv("FLASK_DEBUG", "0") == "1",
			TrustedProxies:     getEnvAsList("TRUSTED_PROXIES"),
			CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		},
		Firestore: FirestoreConfig{
			Credentials: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
			ProjectID:   getEnv("FIRESTORE_PROJECT_ID", getEnv("GOOGLE_CLOUD_PROJECT", "")),
			Collection:  getEnv("FIRESTORE_COLLECTION", "portfolio_projects"),
			Timeout:     getEnvAsDuration("STORE_TIMEOUT", 5*time.Second),
		},
		Assets: AssetsConfig{
			BaseURL: getEnv("ASSET_BASE_URL", "https://storage.googleapis.com"),
			Bucket:  getEnv("ASSET_BUCKET", "portfolio-website-images"),
		},
		Mail: MailConfig{
			Host:      getEnv("MAIL_SERVER", ""),
			Port:      getEnvAsInt("MAIL_PORT", 587),
			UseTLS:    getEnvAsBool("MAIL_USE_TLS", true),
			Username:  username,
			Password:  getEnv("MAIL_PASSWORD", ""),
			Sender:    getEnv("MAIL_SENDER", username),
			Recipient: getEnv("EMAIL_RECIPIENT", ""),
			Timeout:   getEnvAsDuration("MAIL_TIMEOUT", 10*time.Second),
		},
		Session: SessionConfig{
			Secret: getEnv("SECRET_KEY", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Contact: ContactConfig{
			RateLimit:  getEnvAsInt("CONTACT_RATE_LIMIT", 5),
			RateWindow: getEnvAsDuration("CONTACT_RATE_WINDOW", time.Hour),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Firestore.Collection == "" {
		return fmt.Errorf("FIRESTORE_COLLECTION must not be empty")
	}

	if c.Assets.BaseURL == "" || c.Assets.Bucket == "" {
		return fmt.Errorf("ASSET_BASE_URL and ASSET_BUCKET must not be empty")
	}

	if c.Contact.RateLimit <= 0 || c.Contact.RateWindow <= 0 {
		return fmt.Errorf("CONTACT_RATE_LIMIT and CONTACT_RATE_WINDOW must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
