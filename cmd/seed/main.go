// Command main runs the database seeder for Instafeed.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"instafeed/internal/cache"
	"instafeed/internal/config"
	"instafeed/internal/database"
	"instafeed/internal/seed"
)

func main() {
	extraPosts := flag.Int("posts", 0, "Number of generated posts to add on top of the built-in feed")
	fakerSeed := flag.Int64("faker-seed", time.Now().UnixNano(), "Seed for generated content")
	shouldClean := flag.Bool("clean", true, "Reset to the built-in dataset before generating")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: built-in feed + %d generated posts, clean=%v", *extraPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.Run(ctx); err != nil {
			log.Fatalf("Built-in seeding failed: %v", err)
		}
	} else if _, err := s.EnsureSeeded(ctx); err != nil {
		log.Fatalf("Built-in seeding failed: %v", err)
	}

	if *extraPosts > 0 {
		posts, err := seed.NewFactory(db, *fakerSeed).GeneratePosts(ctx, *extraPosts)
		if err != nil {
			log.Fatalf("Generated seeding failed: %v", err)
		}
		log.Printf("Generated %d posts", len(posts))
	}

	// Drop cached reads so the API serves the new data immediately.
	cache.InitRedis(cfg.RedisURL)
	cache.InvalidateAll(ctx)

	log.Println("All done! Your database is now populated.")
}
