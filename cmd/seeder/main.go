package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Yassinemathlouthi/skillswap/internal/config"
	dbpostgres "github.com/Yassinemathlouthi/skillswap/internal/database/postgres"
	"github.com/Yassinemathlouthi/skillswap/internal/database/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := seed.Run(ctx, db, logger); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	logger.Println("Seed | done")
}
