// Command main runs the database seeder for CampusNet.
package main

import (
	"flag"
	"log"

	"campusnet/internal/config"
	"campusnet/internal/database"
	"campusnet/internal/seed"

	"gorm.io/gorm"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	sqlitePath := flag.String("sqlite", "", "Seed a SQLite database at this path instead of PostgreSQL")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d posts, clean=%v\n", *numUsers, *numPosts, *shouldClean)

	db, err := connect(*sqlitePath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)
	if err := s.Run(seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! The database is now populated with test data.")
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}

func connect(sqlitePath string) (*gorm.DB, error) {
	if sqlitePath != "" {
		return database.ConnectSQLite(sqlitePath)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return database.Connect(cfg)
}
