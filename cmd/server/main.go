package main

import (
	"context"
	"fmt"

	"github.com/avoronin/go-blog/internal/config"
	handler "github.com/avoronin/go-blog/internal/handler/http"
	"github.com/avoronin/go-blog/internal/logger"
	"github.com/avoronin/go-blog/internal/mail"
	"github.com/avoronin/go-blog/internal/server"
	"github.com/avoronin/go-blog/internal/service"
	"github.com/avoronin/go-blog/internal/session"
	"github.com/avoronin/go-blog/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-blog-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	mailer := mail.NewSMTPMailer(cfg.Mail, cfg.App.ExternalURL, log)
	services := service.NewServices(*storages, mailer, *cfg, log)
	sessions := session.NewManager(cfg.App, log)

	handlers, err := handler.NewHandler(services, sessions, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating http handler")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
