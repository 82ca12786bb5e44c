package config

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the service reads from the environment.
type Config struct {
	Port string

	// Tabular backend serving the patient tables (users, registration,
	// vitals history, blood tests, allergy records, diagnostics, nutrition log).
	TableAPIBaseURL string

	// Chat-completions style vision/analysis API.
	AnalysisAPIURL string
	AnalysisAPIKey string
	AnalysisModel  string

	JWTSecret string

	// Path of the JSON file holding the user-configured daily goals.
	GoalsFile string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment as-is")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		TableAPIBaseURL: os.Getenv("TABLE_API_BASE_URL"),
		AnalysisAPIURL:  getEnv("ANALYSIS_API_URL", "https://api.openai.com/v1/chat/completions"),
		AnalysisAPIKey:  os.Getenv("ANALYSIS_API_KEY"),
		AnalysisModel:   getEnv("ANALYSIS_MODEL", "gpt-4o-mini"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		GoalsFile:       getEnv("GOALS_FILE", "goals.json"),
	}

	if cfg.TableAPIBaseURL == "" {
		return nil, errors.New("TABLE_API_BASE_URL is required")
	}
	if cfg.AnalysisAPIKey == "" {
		return nil, errors.New("ANALYSIS_API_KEY is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
