package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"

	"prompt-library/internal/config"
	"prompt-library/internal/db"
	"prompt-library/internal/library"
)

func main() {
	filePath := flag.String("file", "seed.yaml", "path to the seed file")
	migrate := flag.Bool("migrate", false, "run auto-migrations before seeding")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close(conn)
	if *migrate || cfg.AutoMigrate {
		if err := db.Migrate(conn); err != nil {
			log.Fatalf("database migration failed: %v", err)
		}
	}

	seed, err := readSeed(*filePath)
	if err != nil {
		log.Fatalf("failed to read seed: %v", err)
	}
	sum, err := applySeed(context.Background(), library.New(conn), seed, filepath.Dir(*filePath))
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Printf("seed complete created=%d skipped=%d users=%d", sum.Created, sum.Skipped, len(seed.Users))
}
