// Package main provides the web CLI: the portfolio API server and its
// maintenance commands.
package main

import (
	"fmt"
	"os"

	"portfolio_backend/internal/config"
	"portfolio_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// configFile is set by the --config flag.
	configFile string

	// cfg is loaded once in PersistentPreRunE.
	cfg *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "web",
	Short:             "Portfolio content API",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: $CONFIG_PATH or config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mailTestCmd)
	rootCmd.AddCommand(messagesCmd)
}

// loadConfig reads .env, then the YAML config, and initializes the logger.
func loadConfig(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read .env: %w", err)
	}
	if configFile != "" {
		os.Setenv("CONFIG_PATH", configFile)
	}

	loaded, err := config.LoadConfig()
	if err != nil {
		return err
	}
	cfg = loaded

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	return nil
}
