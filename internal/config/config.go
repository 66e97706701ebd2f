package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration. Each field comes from one
// environment variable; .env is loaded first when present.
type Config struct {
	Token        string // Telegram bot token
	NotifyChatID int64  // shared channel receiving booking announcements
	DatabaseURL  string // sqlite path or postgres:// DSN
	ReportsAddr  string // reports API listen address, empty disables the API
	ReportsToken string // static bearer token guarding the reports API
}

// Load reads the configuration. The bot token and notification chat are
// required: without them the process logs the problem and does not start.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on environment")
	}

	return Config{
		Token:        must("TOKEN"),
		NotifyChatID: mustInt64("NOTIFY_CHAT_ID"),
		DatabaseURL:  getenv("DATABASE_URL", "bookings.db"),
		ReportsAddr:  os.Getenv("REPORTS_ADDR"),
		ReportsToken: os.Getenv("REPORTS_TOKEN"),
	}
}

func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func mustInt64(key string) int64 {
	s := must(key)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		log.Fatalf("env var %s must be an integer: %v", key, err)
	}
	return n
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
