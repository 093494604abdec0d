// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerURL          string
	SessionFile        string
	GoogleClientID     string
	GoogleClientSecret string
	OAuthCallbackPort  int
	Environment        string
}

// Load reads configuration from environment variables or a .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerURL:          getEnv("CHARCHAT_SERVER_URL", "http://localhost:3000"),
		SessionFile:        getEnv("CHARCHAT_SESSION_FILE", defaultSessionFile()),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		OAuthCallbackPort:  getEnvAsInt("OAUTH_CALLBACK_PORT", 8913),
		Environment:        env,
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.ServerURL == "" {
			missing = append(missing, "CHARCHAT_SERVER_URL")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// defaultSessionFile places the saved session under the user config dir,
// falling back to the working directory when it cannot be determined.
func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".charchat-session.json"
	}
	return filepath.Join(dir, "charchat", "session.json")
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
