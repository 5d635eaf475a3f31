// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, role gating, rate limiting, logging,
// and tracing concerns are all handled at this layer before requests are
// forwarded to the service layer.
package http

import (
	"github.com/MKhiriev/go-user-admin/internal/config"
	"github.com/MKhiriev/go-user-admin/internal/logger"
	"github.com/MKhiriev/go-user-admin/internal/service"
)

type Handler struct {
	services *service.Services
	cfg      HandlerConfig

	logger *logger.Logger
}

// HandlerConfig carries the transport-level settings the handlers need:
// cookie hardening, session lifetime, rate limits, and whether raw reset
// secrets may be echoed in responses (never in production).
type HandlerConfig struct {
	Production     bool
	TokenDuration  int // cookie Max-Age in seconds
	AuthRateLimit  int
	AuthRateWindow int // seconds
}

// NewHandlerConfig derives a [HandlerConfig] from the application config.
func NewHandlerConfig(cfg *config.StructuredConfig) HandlerConfig {
	return HandlerConfig{
		Production:     cfg.Server.Production,
		TokenDuration:  int(cfg.Auth.TokenDuration.Seconds()),
		AuthRateLimit:  cfg.Server.AuthRateLimit,
		AuthRateWindow: int(cfg.Server.AuthRateWindow.Seconds()),
	}
}

func NewHandler(services *service.Services, cfg HandlerConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		cfg:      cfg,
		logger:   logger,
	}
}
