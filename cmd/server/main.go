package main

import (
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/immunitrack/vaccine-tracker-api/internal/auth"
	"github.com/immunitrack/vaccine-tracker-api/internal/config"
	"github.com/immunitrack/vaccine-tracker-api/internal/database"
	"github.com/immunitrack/vaccine-tracker-api/internal/handlers"
	"github.com/immunitrack/vaccine-tracker-api/internal/notifier"
)

func main() {
	// .env is optional; deployments usually set the environment directly.
	godotenv.Load()

	cfg := config.LoadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	db := database.Connect(cfg, log)

	var sessionNotifier notifier.Notifier
	if cfg.DiscordBotToken != "" {
		discord, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			log.Warnf("Discord notifier not initialized: %v", err)
		} else {
			sessionNotifier = notifier.NewDiscordNotifier(discord, cfg.DiscordNotificationsChannelID, log)
		}
	}

	authHandler := auth.NewAuthHandler(cfg, db)
	persons := handlers.NewPersonHandler(db)
	vaccines := handlers.NewVaccineHandler(db)
	locations := handlers.NewLocationHandler(db)
	sessions := handlers.NewSessionHandler(db, sessionNotifier)
	apiKeys := handlers.NewAPIKeyHandler(db)

	r := chi.NewRouter()
	handlers.RegisterRoutes(r, cfg, authHandler, persons, vaccines, locations, sessions, apiKeys)

	log.Infof("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
