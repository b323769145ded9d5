package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deliverypartner/cmd"

	"github.com/labstack/gommon/log"
)

func main() {
	if err := cmd.LoadEnv(); err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}
	cfg, err := cmd.LoadBackendConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, err := cmd.NewBackendRoot(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to start backend: %v", err)
	}
	defer root.Close()

	if err := root.Seed(ctx); err != nil {
		log.Fatalf("%v", err)
	}

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, root, cfg.HTTPPort)
}

func startWebServer(ctx context.Context, root *cmd.BackendRoot, port string) {
	e, err := root.CreateEcho(ctx)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			e.Logger.Error(err)
		}
	}()

	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		e.Logger.Fatal(err)
	}
}
