package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/app"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/config"
	apierrors "github.com/paulaandreaia-bit/Dashboard-transformacion/internal/errors"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/infrastructure"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts"
)

func main() {
	configFile := flag.String("config", "", "path to a YAML config file (defaults to config.yaml or configs/config.yaml)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		os.Stdout.WriteString(contracts.GetFullVersionString() + "\n")
		return
	}

	os.Exit(run(*configFile))
}

func run(configFile string) int {
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", slog.String("error", err.Error()))
		return 1
	}
	defer infrastructure.CloseLogFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApplication(ctx, cfg, logger)
	if err != nil {
		var appErr *apierrors.AppError
		if errors.As(err, &appErr) && appErr.Type == apierrors.ErrTypeMissingSource {
			logger.Error("Interventions workbook not found",
				slog.Any("path", appErr.Context["path"]),
				slog.String("error", err.Error()))
			return 1
		}
		logger.Error("Failed to initialize application", slog.String("error", err.Error()))
		return 1
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return 1
	}
	return 0
}
