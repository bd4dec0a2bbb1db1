package main

import (
	"context"

	"github.com/OFFIS-RIT/scriptnet/backend/internal/app"
	"github.com/OFFIS-RIT/scriptnet/backend/internal/config"
	"github.com/OFFIS-RIT/scriptnet/backend/internal/server"
	"github.com/OFFIS-RIT/scriptnet/backend/internal/util"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/logger"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", "err", err)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to initialize app", "err", err)
	}

	server.Init(cfg, a)
}
