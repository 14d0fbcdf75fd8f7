package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/autolane-tms/autolane_api/seed/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, dealers, vehicles, billing")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			envOr("DB_HOST", "localhost"),
			envOr("DB_USER", "postgres"),
			envOr("DB_PASSWORD", "postgres"),
			envOr("DB_NAME", "autolane_api"),
			envOr("DB_PORT", "5432"),
			envOr("DB_SSLMODE", "disable"),
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Connected to database")

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		err = mainSeeder.SeedAll()
	case "dealers":
		err = mainSeeder.SeedDealers()
	case "vehicles":
		err = mainSeeder.SeedVehicles()
	case "billing":
		err = mainSeeder.SeedBilling()
	default:
		log.Fatalf("Unknown seed type: %s", *seedType)
	}

	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding completed successfully")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func showHelp() {
	fmt.Println("Database seeder")
	fmt.Println()
	fmt.Println("Usage: seed [flags]")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -type string   Type of seeding: all, dealers, vehicles, billing (default \"all\")")
	fmt.Println("  -help          Show this message")
}
