package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ylwblog/internal/domain/config"
)

var (
	configPath string
	envPath    string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "ylwblog",
	Short:         "Collect blog post metadata for the site theme",
	Long:          "ylwblog reads the front matter of every post under the content root and writes a newest-first post list plus the site theme data.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "site.yaml", "Path to the site config")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", ".env", "Optional .env file with YLWBLOG_* overrides")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the config, applies env and flag overrides and returns a
// logger at the configured level.
func setup() (config.Config, *slog.Logger, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return cfg, nil, fmt.Errorf("load config %s: %w", configPath, err)
	}
	if err := cfg.ApplyEnv(envPath); err != nil {
		return cfg, nil, fmt.Errorf("load env %s: %w", envPath, err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}
