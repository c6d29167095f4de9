package server

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/merchops/support-assistant/internal/config"
	"github.com/merchops/support-assistant/internal/handler"
	"github.com/merchops/support-assistant/internal/middleware"
	"github.com/merchops/support-assistant/pkg/logger"
)

type Server struct {
	echo           *echo.Echo
	cfg            *config.Config
	logger         *logger.Logger
	supportHandler *handler.SupportHandler
	dataHandler    *handler.DataHandler
	ticketHandler  *handler.TicketHandler
	healthHandler  *handler.HealthHandler
}

func New(
	cfg *config.Config,
	log *logger.Logger,
	supportHandler *handler.SupportHandler,
	dataHandler *handler.DataHandler,
	ticketHandler *handler.TicketHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	return &Server{
		echo:           e,
		cfg:            cfg,
		logger:         log,
		supportHandler: supportHandler,
		dataHandler:    dataHandler,
		ticketHandler:  ticketHandler,
		healthHandler:  healthHandler,
	}
}

func (s *Server) Start() error {
	s.setupMiddleware()
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%s", s.cfg.Server.Host, s.cfg.Server.Port)
	s.logger.Info(context.Background(), "Starting HTTP server",
		"address", addr,
	)

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "Shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupMiddleware() {
	s.echo.Use(echoMiddleware.Recover())
	s.echo.Use(echoMiddleware.CORS())
	s.echo.Use(middleware.RequestID())
	s.echo.Use(middleware.Logging(s.logger))
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthHandler.Check)

	api := s.echo.Group("/api")

	api.POST("/query", s.supportHandler.Query)
	api.POST("/analyze", s.supportHandler.Analyze)
	api.GET("/summary", s.supportHandler.ConversationSummary)
	api.POST("/scenario/:type", s.supportHandler.Scenario)

	api.GET("/data/merchant", s.dataHandler.Merchant)
	api.GET("/data/account", s.dataHandler.Account)
	api.GET("/data/kyc", s.dataHandler.KYC)
	api.GET("/data/payout", s.dataHandler.Payout)
	api.GET("/data/limits", s.dataHandler.Limits)
	api.GET("/data/tickets", s.dataHandler.Tickets)
	api.GET("/data/notifications", s.dataHandler.Notifications)
	api.GET("/data/dashboard", s.dataHandler.Dashboard)
	api.GET("/data/summary", s.dataHandler.Summary)
	api.POST("/data/reload", s.dataHandler.Reload)
	api.GET("/data/files", s.dataHandler.Files)

	api.POST("/ticket/create", s.ticketHandler.Create)
	api.PUT("/ticket/:id/status", s.ticketHandler.UpdateStatus)
	api.POST("/kyc/document", s.ticketHandler.AddKYCDocument)
}

func (s *Server) Handler() *echo.Echo {
	s.setupMiddleware()
	s.setupRoutes()
	return s.echo
}
