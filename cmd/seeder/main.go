package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/brianxchen/badminton-queue/internal/club"
	"github.com/brianxchen/badminton-queue/internal/database"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"DB_NAME", "ADMIN_USERNAME", "ADMIN_PASSWORD"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	config["TURSO_PRIMARY_URL"] = os.Getenv("TURSO_PRIMARY_URL")
	config["TURSO_AUTH_TOKEN"] = os.Getenv("TURSO_AUTH_TOKEN")
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], "./migrations")
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()
	defer db.Close()

	store := club.New(db)

	if err := store.CreateMember(cfg["ADMIN_USERNAME"], cfg["ADMIN_PASSWORD"], true); err != nil {
		if errors.Is(err, club.ErrMemberExists) {
			log.Info("Admin account already exists, skipping", "username", cfg["ADMIN_USERNAME"])
		} else {
			log.Fatalf("Failed to create admin account: %s", err)
		}
	} else {
		log.Info("Created admin account", "username", cfg["ADMIN_USERNAME"])
	}

	// Demo members for local development only.
	if os.Getenv("SEED_DEMO_MEMBERS") == "true" {
		for _, m := range []struct {
			username string
			password string
		}{
			{"alice", "alice-pw"},
			{"bob", "bob-pw"},
			{"carol", "carol-pw"},
		} {
			if err := store.CreateMember(m.username, m.password, false); err != nil {
				if errors.Is(err, club.ErrMemberExists) {
					log.Info("Demo member already exists, skipping", "username", m.username)
					continue
				}
				log.Fatalf("Failed to create demo member %s: %s", m.username, err)
			}
			log.Info("Created demo member", "username", m.username)
		}
	}

	log.Info("Seeding complete.")
}
