package main

import (
	"bottle_orders/internal/config" // Custom import path (Config)
	"bottle_orders/internal/db"     // Custom import path (Database)
	"os"                            // Reading seed files

	"github.com/sirupsen/logrus"  // Logrus for structured logging
	flag "github.com/spf13/pflag" // POSIX-style flags
)

// Main entry point for migration
func main() {
	seed := flag.Bool("seed", false, "load demo users, orders and tickets after migrating")
	seedFile := flag.String("seed-file", "", "YAML fixture to seed instead of the embedded one")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	cfg := config.LoadConfig() // Load configuration

	database, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		logrus.Fatalf("Migration failed: %v", err)
	}
	if !*seed && *seedFile == "" {
		return
	}

	raw := db.DefaultSeed
	if *seedFile != "" {
		if raw, err = os.ReadFile(*seedFile); err != nil {
			logrus.Fatalf("Failed to read seed file: %v", err)
		}
	}
	data, err := db.ParseSeed(raw)
	if err != nil {
		logrus.Fatalf("Invalid seed file: %v", err)
	}
	if err := db.Seed(database, data); err != nil {
		logrus.Fatalf("Seeding failed: %v", err)
	}
}
