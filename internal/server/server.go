package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OFFIS-RIT/scriptnet/backend/internal/app"
	"github.com/OFFIS-RIT/scriptnet/backend/internal/config"
	mid "github.com/OFFIS-RIT/scriptnet/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/logger"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func requestID() string {
	id, err := gonanoid.New()
	if err != nil {
		return ""
	}
	return id
}

func logRequest(c echo.Context, v middleware.RequestLoggerValues) error {
	keyvals := []any{
		"method", v.Method,
		"uri", v.URI,
		"status", v.Status,
		"latency", v.Latency,
		"request_id", v.RequestID,
	}
	if v.Error != nil {
		logger.Error("Request failed", append(keyvals, "err", v.Error)...)
		return nil
	}
	logger.Info("Request", keyvals...)
	return nil
}

// New builds the echo instance with middleware and routes but does not start it.
func New(a *app.App, apiKey string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: requestID}))
	e.Use(mid.AppContextMiddleware(a))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:     true,
		LogURI:        true,
		LogStatus:     true,
		LogLatency:    true,
		LogRequestID:  true,
		LogError:      true,
		HandleError:   true,
		LogValuesFunc: logRequest,
	}))
	e.Use(middleware.Recover())

	RegisterRoutes(e, apiKey)
	return e
}

// Init serves the API until SIGINT or SIGTERM and then shuts down gracefully.
func Init(cfg *config.Config, a *app.App) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := New(a, cfg.APIKey)

	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
