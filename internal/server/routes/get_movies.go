package routes

import (
	"net/http"

	"github.com/OFFIS-RIT/scriptnet/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

func GetMoviesHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	movies, err := app.Registry.ListMovies(ctx)
	if err != nil {
		logger.Error("Failed to list movies", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to read movie registry"})
	}

	return c.JSON(http.StatusOK, map[string][]string{"movies": movies})
}
