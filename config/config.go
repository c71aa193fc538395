package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	InputCSVPath     string
	CleanCSVPath     string
	RejectionCSVPath string

	// AnalysisConfigPath points at the optional YAML tuning file; empty means
	// built-in defaults.
	AnalysisConfigPath string

	LogLevel string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		InputCSVPath:     getEnv("INPUT_CSV_PATH", "./data/cafe_feedback.csv"),
		CleanCSVPath:     getEnv("CLEAN_CSV_PATH", "./output/clean_feedback.csv"),
		RejectionCSVPath: getEnv("REJECTION_CSV_PATH", "./output/rejected_feedback.csv"),

		AnalysisConfigPath: getEnv("ANALYSIS_CONFIG_PATH", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
