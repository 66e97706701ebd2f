// One-shot archive sweep: moves every booking whose date has passed into the
// archive table. The bot already sweeps opportunistically before listings;
// this utility exists for cron-style maintenance of an idle deployment.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"rentalbot/internal/database"
	"rentalbot/internal/domain"
	"rentalbot/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on environment")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "bookings.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}

	repo := repository.NewBookingRepository(db)
	if err := repo.Migrate(); err != nil {
		log.Fatal(err)
	}

	today := time.Now().Format(domain.DateLayout)
	moved, err := repo.ArchiveExpired(context.Background(), today)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("archive_sweep moved=%d today=%s", moved, today)
}
