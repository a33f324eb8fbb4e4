// Command promiedos-function serves one promiedos-alerts run per HTTP request.
// A scheduler (Cloud Scheduler, cron + curl) triggers it; the response body is the snapshot.
package main

import (
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/pfrederiksen/promiedos-alerts/internal/config"
	"github.com/pfrederiksen/promiedos-alerts/internal/handler"
	"github.com/pfrederiksen/promiedos-alerts/internal/logger"
)

const defaultPort = "8080"

func main() {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		logger.Error("Invalid configuration", nil, err)
		os.Exit(1)
	}
	logger.SetDefault(logger.New(cfg.Level(), os.Stdout))

	h, err := handler.FromConfig(cfg, handler.Options{})
	if err != nil {
		logger.Error("Failed to build handler", nil, err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	funcframework.RegisterHTTPFunction("/", h.ServeHTTP)
	logger.Info("Listening", logger.Fields{"port": port})
	if err := funcframework.Start(port); err != nil {
		logger.Error("Failed to start function", nil, err)
		os.Exit(1)
	}
}
