package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	DBName string
	JWTKey string

	EmailSender   string
	EmailFromName string
	SendGridKey   string

	// CertificateWebhookURL is the external certificate issuer endpoint,
	// notified once per course completion. Empty disables the webhook.
	CertificateWebhookURL string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		DBName: getEnv("DB_NAME", "lms.db"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		EmailSender:   getEnv("EMAIL_SENDER", "noreply@example.com"),
		EmailFromName: getEnv("EMAIL_FROM_NAME", "Learning Platform"),
		SendGridKey:   getEnv("SENDGRID_API_KEY", ""),

		CertificateWebhookURL: getEnv("CERTIFICATE_WEBHOOK_URL", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.SendGridKey == "" {
		log.Println("Warning: SENDGRID_API_KEY not set. Completion emails are disabled.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
