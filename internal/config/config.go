package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	getEnvDefault := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}

	courtCount, err := strconv.Atoi(getEnvDefault("COURT_COUNT", "4"))
	if err != nil || courtCount < 1 {
		log.Fatalf("Error: COURT_COUNT must be a positive integer.")
	}
	capacity, err := strconv.Atoi(getEnvDefault("COURT_CAPACITY", "2"))
	if err != nil || capacity < 1 {
		log.Fatalf("Error: COURT_CAPACITY must be a positive integer.")
	}

	courts := make([]string, courtCount)
	for i := range courts {
		courts[i] = fmt.Sprintf("Court %d", i+1)
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: "./migrations",
		Port:          getEnv("PORT"),
		Turso: TursoConfig{
			PrimaryURL: getEnvDefault("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvDefault("TURSO_AUTH_TOKEN", ""),
		},
		JWTSecret: getEnv("JWT_SECRET"),
		TokenTTL:  12 * time.Hour,
		Board: BoardConfig{
			Courts:       courts,
			Capacity:     capacity,
			GroupMode:    strings.EqualFold(getEnvDefault("GROUP_MODE", "false"), "true"),
			PollInterval: time.Second,
		},
		GateMutations: strings.EqualFold(getEnvDefault("GATE_MUTATIONS", "false"), "true"),
	}
	return cfg
}
