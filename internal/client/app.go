package client

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-study-keeper/internal/config"
	myHTTP "github.com/MKhiriev/go-study-keeper/internal/handler/http"
	"github.com/MKhiriev/go-study-keeper/internal/logger"
	"github.com/MKhiriev/go-study-keeper/internal/server"
	"github.com/MKhiriev/go-study-keeper/internal/service"
)

type App struct {
	services *service.Services
	cfg      *config.StructuredConfig
	logger   *logger.Logger
}

func NewApp(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) (*App, error) {
	if services == nil || cfg == nil {
		return nil, fmt.Errorf("client app requires services and config")
	}

	return &App{
		services: services,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Run starts the sync runtime and blocks until a stop signal arrives.
// Items left in flight by a previous crash are reset before the first cycle.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := a.services.Engine.Recover(ctx); err != nil {
		return fmt.Errorf("recover interrupted items: %w", err)
	}

	events, unsubscribe := a.services.Engine.Subscribe()
	defer unsubscribe()
	go a.logStatusEvents(events)

	a.services.Job.Start(ctx, a.cfg.Engine.SyncInterval)
	defer a.services.Job.Stop()

	if a.cfg.Monitor.Enabled {
		handlers := myHTTP.NewHandler(a.services, a.logger)

		monitor, err := server.NewServer(handlers.Init(), a.cfg.Monitor, a.logger)
		if err != nil {
			return fmt.Errorf("create monitor server: %w", err)
		}

		// blocks until a stop signal, then shuts the listener down
		monitor.RunServer()
		return nil
	}

	<-ctx.Done()
	a.logger.Info().Msg("shutdown signal received")

	return nil
}

func (a *App) logStatusEvents(events <-chan service.StatusEvent) {
	for event := range events {
		a.logger.Info().
			Str("item_id", event.ItemID).
			Str("entity_type", string(event.Ref.Type)).
			Str("entity_id", event.Ref.ID).
			Str("status", string(event.Status)).
			Msg("sync status changed")
	}
}
