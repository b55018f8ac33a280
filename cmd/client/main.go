package main

import (
	"fmt"

	"github.com/MKhiriev/go-study-keeper/internal/adapter"
	"github.com/MKhiriev/go-study-keeper/internal/client"
	"github.com/MKhiriev/go-study-keeper/internal/config"
	"github.com/MKhiriev/go-study-keeper/internal/logger"
	"github.com/MKhiriev/go-study-keeper/internal/service"
	"github.com/MKhiriev/go-study-keeper/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewFileLogger("go-study-keeper")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	remoteAdapter, err := adapter.NewHTTPRemoteAdapter(cfg.Remote, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote adapter")
	}

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	services := service.NewServices(storages, remoteAdapter, cfg.Engine, cfg.Node.ID, log)

	app, err := client.NewApp(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
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
