package router

import (
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/labstack/echo/v4"

	"github.com/arcadia-dao/timelock-admin/internal/api"
	"github.com/arcadia-dao/timelock-admin/internal/api/handlers"
	"github.com/arcadia-dao/timelock-admin/internal/api/middleware"
)

func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = false
	s.Echo.HideBanner = true
	s.Echo.HidePort = true

	s.Echo.HTTPErrorHandler = HTTPErrorHandler(s.Config.Echo.HideInternalServerErrorDetails)

	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(echoMiddleware.Recover())
	}
	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(echoMiddleware.RequestID())
	}
	if s.Config.Echo.EnableLoggerMiddleware {
		s.Echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Level: s.Config.Logger.RequestLevel,
		}))
	}

	s.Router = &api.Router{
		Routes: nil, // will be populated by handlers.AttachAllRoutes(s)

		Root:       s.Echo.Group(""),
		Management: s.Echo.Group("/-"),

		APIV1Timelock: s.Echo.Group("/api/v1/timelock", middleware.APIKeyAuth(s.Config.Auth.AdminAPIKey)),
		APIV1Signer:   s.Echo.Group("/api/v1/signer", middleware.APIKeyAuth(s.Config.Auth.AdminAPIKey)),
		APIV1Audit:    s.Echo.Group("/api/v1/audit", middleware.APIKeyAuth(s.Config.Auth.AdminAPIKey)),
	}

	handlers.AttachAllRoutes(s)
}
