package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-user-admin/internal/config"
	myHTTP "github.com/MKhiriev/go-user-admin/internal/handler/http"
	"github.com/MKhiriev/go-user-admin/internal/logger"
	"github.com/MKhiriev/go-user-admin/internal/mailer"
	"github.com/MKhiriev/go-user-admin/internal/server"
	"github.com/MKhiriev/go-user-admin/internal/service"
	"github.com/MKhiriev/go-user-admin/internal/store"
	"github.com/MKhiriev/go-user-admin/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-user-admin-server")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	resetMailer := mailer.NewEmailMailer(cfg.SMTP, cfg.Auth.ResetTokenDuration, log)

	services, err := service.NewServices(storages, resetMailer, cfg.Auth, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handler := myHTTP.NewHandler(services, myHTTP.NewHandlerConfig(cfg), log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	var backgroundWorkers workers.Workers
	if cfg.Workers.ResetCleanupInterval > 0 {
		backgroundWorkers.Add(workers.NewResetCleanupWorker(
			storages.UserRepository,
			cfg.Workers.ResetCleanupInterval,
			log,
		))
	}
	backgroundWorkers.Run(ctx)

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
