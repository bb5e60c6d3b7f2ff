package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/robot-insight/app/api"
	"github.com/lysyi3m/robot-insight/app/cfg"
	"github.com/lysyi3m/robot-insight/app/dashboard"
	"github.com/lysyi3m/robot-insight/app/sheet"
)

func main() {
	appCfg, err := cfg.Load(os.Args[1:])
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	slog.Info("Starting Robot Insight server", "version", appCfg.Version, "timezone", time.Local.String())

	labels, err := dashboard.LoadLabels(appCfg.LabelsFile)
	if err != nil {
		slog.Error("Failed to load labels", "path", appCfg.LabelsFile, "error", err)
		os.Exit(1)
	}

	renderer, err := dashboard.NewRenderer(labels)
	if err != nil {
		slog.Error("Failed to build dashboard template", "error", err)
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: appCfg.GetFetchTimeout()}
	loader := sheet.NewLoader(sheet.SheetURL, httpClient, appCfg.UserAgent)

	apiHandler := api.NewHandler(loader, sheet.NewFilterer(), renderer, appCfg.Version)
	server := api.NewServer(apiHandler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		slog.Info("Endpoints available",
			"dashboard", fmt.Sprintf("http://localhost:%s/", appCfg.Port),
			"briefing", fmt.Sprintf("http://localhost:%s/api/briefing", appCfg.Port),
			"feed", fmt.Sprintf("http://localhost:%s/feed.xml", appCfg.Port),
			"health", fmt.Sprintf("http://localhost:%s/health", appCfg.Port))

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Robot Insight server shutdown complete")
}
