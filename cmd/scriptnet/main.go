package main

import (
	"context"
	"fmt"
	"os"

	"github.com/OFFIS-RIT/scriptnet/backend/internal/app"
	"github.com/OFFIS-RIT/scriptnet/backend/internal/config"
	"github.com/OFFIS-RIT/scriptnet/backend/internal/util"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/logger"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/logger/console"

	"github.com/spf13/cobra"
)

var (
	envFile    string
	jsonOutput bool

	cfg       *config.Config
	scriptApp *app.App
)

var rootCmd = &cobra.Command{
	Use:           "scriptnet <command>",
	Short:         "Character interaction networks from movie scripts",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		util.LoadEnv(envFile)

		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c

		logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
			Debug:  cfg.Debug,
			Prefix: "scriptnet",
		}))

		a, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		scriptApp = a
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(moviesCmd)
	rootCmd.AddCommand(networkCmd)
	rootCmd.AddCommand(registryCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
