package middleware

import (
	"github.com/OFFIS-RIT/scriptnet/backend/internal/app"

	"github.com/labstack/echo/v4"
)

type AppContext struct {
	echo.Context
	App *app.App
}

func AppContextMiddleware(a *app.App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, a}
			return next(cc)
		}
	}
}
