package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	DBName string
	JWTKey string

	PlatformApiURL     string // Base URL of the platform backend API
	PlatformTimeoutSec int    // Per-request timeout for platform calls

	OTPResendCooldownSec int // Minimum gap between OTP resends
	FlowTTLMin           int // Lifetime of an unfinished auth flow
	SessionTTLHours      int // Lifetime of an admin session
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
		DBName: getEnv("DB_NAME", "adminPortal.db"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		PlatformApiURL:     getEnv("PLATFORM_API_URL", "http://localhost:8000/api/v1"),
		PlatformTimeoutSec: getEnvInt("PLATFORM_API_TIMEOUT_SEC", 30),

		OTPResendCooldownSec: getEnvInt("OTP_RESEND_COOLDOWN_SEC", 60),
		FlowTTLMin:           getEnvInt("FLOW_TTL_MIN", 15),
		SessionTTLHours:      getEnvInt("SESSION_TTL_HOURS", 24),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.PlatformApiURL == "http://localhost:8000/api/v1" {
		log.Println("Warning: Using default PLATFORM_API_URL. Update it in your environment.")
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

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
