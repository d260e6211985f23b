package main

import (
	"log"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/recruit-dash/internal/app"
	"github.com/honeycarbs/recruit-dash/internal/config"
	"github.com/honeycarbs/recruit-dash/pkg/logging"
	"github.com/honeycarbs/recruit-dash/pkg/shutdown"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	srv, err := app.InitializeServer(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize server", "err", err)
		os.Exit(1)
	}

	go shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		10*time.Second,
		logger,
		srv,
	)

	logger.Info("functions server initialized and starting", "addr", srv.Addr())

	if err := srv.Run(); err != nil {
		logger.Error("functions server exited with error", "err", err)
	} else {
		logger.Info("functions server stopped")
	}
}
