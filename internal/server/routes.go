package server

import (
	"github.com/OFFIS-RIT/scriptnet/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/scriptnet/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, apiKey string) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.APIKeyMiddleware(apiKey))

	// Movie routes
	apiRoutes.GET("/movies", routes.GetMoviesHandler)
	apiRoutes.GET("/movies/:name/network", routes.GetNetworkHandler)
	apiRoutes.GET("/movies/:name/pairs", routes.GetPairsHandler)
}
