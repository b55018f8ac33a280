package http

import (
	"github.com/MKhiriev/go-study-keeper/internal/logger"
	"github.com/MKhiriev/go-study-keeper/internal/service"
)

type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("monitor http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
