// Command seed runs the database seeder for Forkful.
package main

import (
	"flag"
	"log"

	"forkful/internal/config"
	"forkful/internal/database"
	"forkful/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numRecipes := flag.Int("recipes", 200, "Number of recipes to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	maxDays := flag.Int("max-days", 90, "Spread created_at timestamps over this many days")
	preset := flag.String("preset", "", "Apply a curated preset (e.g. classics) instead of random data")
	flag.Parse()

	log.Println("Database Seeder")
	if *preset != "" {
		log.Printf("Applying preset: %s (ignoring other flags)\n", *preset)
	} else {
		log.Printf("Target: %d users, %d recipes, clean=%v\n", *numUsers, *numRecipes, *shouldClean)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{
		NumUsers:    *numUsers,
		NumRecipes:  *numRecipes,
		ShouldClean: *shouldClean,
		MaxDays:     *maxDays,
	})

	if *preset != "" {
		if err := s.ApplyPreset(*preset); err != nil {
			log.Fatalf("Preset seeding failed: %v", err)
		}
	} else if err := s.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}
