package config

import (
	"fmt"

	"github.com/joho/godotenv"
)

// loadEnvFile loads environment variables from .env/.env.local files.
// It stops at the first file that loads; variables already set in the
// process environment are never overwritten.
func loadEnvFile() (string, error) {
	for _, envPath := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envPath); err == nil {
			return envPath, nil
		}
	}
	return "", fmt.Errorf("no .env file found")
}
