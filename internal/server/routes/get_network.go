package routes

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/OFFIS-RIT/scriptnet/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/common"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/loader"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/logger"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/registry"

	"github.com/labstack/echo/v4"
)

type movieParams struct {
	Name string `param:"name" validate:"required"`
}

// bindMovie resolves the :name parameter to a script file. On failure the error
// response has already been written and ok is false.
func bindMovie(c echo.Context) (file loader.ScriptFile, ok bool, err error) {
	params := new(movieParams)
	if err := c.Bind(params); err != nil {
		return file, false, c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if name, err := url.PathUnescape(params.Name); err == nil {
		params.Name = name
	}
	if err := c.Validate(params); err != nil {
		return file, false, c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App
	file, err = app.ScriptFile(c.Request().Context(), params.Name)
	if errors.Is(err, registry.ErrMovieNotFound) {
		return file, false, c.JSON(http.StatusNotFound, map[string]string{"error": "Movie not found"})
	}
	if err != nil {
		logger.Error("Failed to resolve movie", "movie", params.Name, "err", err)
		return file, false, c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to resolve movie"})
	}

	return file, true, nil
}

func GetNetworkHandler(c echo.Context) error {
	file, ok, err := bindMovie(c)
	if !ok {
		return err
	}

	app := c.(*middleware.AppContext).App
	figs, err := app.Network.BuildNetworkFigure(c.Request().Context(), file, file.Movie)
	if err != nil {
		logger.Error("Failed to build network", "movie", file.Movie, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to build network"})
	}

	return c.JSON(http.StatusOK, figs)
}

type pairsResponse struct {
	Movie         string         `json:"movie"`
	TopCharacters []common.Count `json:"top_characters"`
	Pairs         []common.Count `json:"pairs"`
	Nodes         []string       `json:"nodes"`
}

func GetPairsHandler(c echo.Context) error {
	file, ok, err := bindMovie(c)
	if !ok {
		return err
	}

	app := c.(*middleware.AppContext).App
	result, err := app.Network.BuildNetworkPairs(c.Request().Context(), file)
	if err != nil {
		logger.Error("Failed to build pairs", "movie", file.Movie, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to build network"})
	}

	return c.JSON(http.StatusOK, pairsResponse{
		Movie:         file.Movie,
		TopCharacters: result.TopCharacters.Sorted(),
		Pairs:         result.Pairs.Sorted(),
		Nodes:         result.Nodes,
	})
}
