package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Turso         TursoConfig
	JWTSecret     string
	TokenTTL      time.Duration
	Board         BoardConfig
	// GateMutations makes a closed club reject non-admin board mutations
	// instead of only hiding the board.
	GateMutations bool
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type BoardConfig struct {
	Courts       []string
	Capacity     int
	GroupMode    bool
	PollInterval time.Duration
}
