package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"rentalbot/internal/catalog"
	"rentalbot/internal/config"
	"rentalbot/internal/database"
	"rentalbot/internal/middleware"
	"rentalbot/internal/modules/availability"
	"rentalbot/internal/modules/booking"
	"rentalbot/internal/modules/events"
	"rentalbot/internal/modules/flow"
	"rentalbot/internal/modules/report"
	"rentalbot/internal/notifier"
	"rentalbot/internal/repository"
	"rentalbot/internal/session"
	"rentalbot/internal/telegram"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	bookingRepo := repository.NewBookingRepository(db)
	if err := bookingRepo.Migrate(); err != nil {
		log.Fatal(err)
	}

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		log.Fatal(err)
	}

	cat := catalog.Default()
	hub := events.NewHub()

	availService := availability.NewService(cat, bookingRepo)
	notifs := notifier.NewTelegram(api, cfg.NotifyChatID, cat)
	bookingService := booking.NewService(bookingRepo, cat, availService, notifs, hub)
	controller := flow.NewController(cat, session.NewStore(), bookingService, availService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.ReportsAddr != "" {
		go runReportsAPI(cfg, bookingService, availService, cat, hub)
	}

	telegram.New(api, controller).Run(ctx)
	log.Println("bot stopped")
}

func runReportsAPI(cfg config.Config, bookings *booking.Service, avail *availability.Service, cat *catalog.Catalog, hub *events.Hub) {
	r := gin.Default()
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	v1.Use(middleware.InternalTokenAuth(cfg.ReportsToken))
	report.NewHandler(bookings, avail, cat, hub).RegisterRoutes(v1)

	log.Printf("reports_api_listening addr=%s", cfg.ReportsAddr)
	if err := r.Run(cfg.ReportsAddr); err != nil {
		log.Printf("reports_api_failed error=%q", err)
	}
}
