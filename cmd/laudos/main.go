package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"laudos-api/config"
	"laudos-api/internal"
)

func main() {
	var envFile string

	rootCmd := &cobra.Command{
		Use:           "laudos",
		Short:         "Medical records API: doctors, patients and laudos",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), envFile)
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(cmd.Context(), envFile)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema and exit",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return migrate(cmd.Context(), envFile)
			},
		},
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func load(envFile string) (config.Config, *zap.Logger, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, nil, fmt.Errorf("load %s: %w", envFile, err)
	}
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("cannot initialize zap logger: %w", err)
	}

	return cfg, logger, nil
}

func serve(ctx context.Context, envFile string) error {
	cfg, logger, err := load(envFile)
	if err != nil {
		return err
	}

	app, err := internal.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("init app failed", zap.Error(err))
		_ = logger.Sync()
		return err
	}
	defer app.Close()

	app.InitControllers()

	return app.Run(ctx)
}

func migrate(ctx context.Context, envFile string) error {
	cfg, logger, err := load(envFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return internal.Migrate(ctx, cfg, logger)
}
