package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NeuralTrust/ComplianceHawk/pkg/config"
	"github.com/NeuralTrust/ComplianceHawk/pkg/dependency_container"
	infraLogger "github.com/NeuralTrust/ComplianceHawk/pkg/infra/logger"
	"github.com/NeuralTrust/ComplianceHawk/pkg/server"
	"github.com/NeuralTrust/ComplianceHawk/pkg/version"
	"github.com/joho/godotenv"
)

const (
	modeServe   = "serve"
	modePing    = "ping"
	modeOpenAPI = "openapi"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	mode, args := getMode()

	if mode == modeOpenAPI {
		path := defaultOpenAPIFile
		if len(args) > 0 {
			path = args[0]
		}
		if err := exportOpenAPI(path); err != nil {
			fmt.Fprintln(os.Stderr, "failed to export openapi document:", err)
			os.Exit(1)
		}
		fmt.Printf("%s generated successfully.\n", path)
		return
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := infraLogger.NewLogger(cfg.Logging.Level, cfg.Logging.File)

	if mode == modePing {
		os.Exit(runPing(cfg, os.Stdout))
	}

	container, err := dependency_container.NewContainer(dependency_container.ContainerDI{
		Cfg:    cfg,
		Logger: logger,
	})
	if err != nil {
		logger.Fatalf("failed to initialize dependencies: %v", err)
	}

	srv := server.NewAPIServer(server.APIServerDI{
		MiddlewareTransport: container.MiddlewareTransport,
		HandlerTransport:    container.HandlerTransport,
		Config:              cfg,
		Logger:              logger,
	})

	logger.WithField("version", version.Version).
		WithField("provider", cfg.Model.Provider).
		WithField("model_available", container.ModelAdapter.Available()).
		Info("compliance hawk initialized")

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Error("error shutting down server")
		os.Exit(1)
	}
	logger.Info("server gracefully stopped")
}

func getMode() (string, []string) {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case modeServe, modePing, modeOpenAPI:
			return os.Args[1], os.Args[2:]
		default:
			log.Fatalf("unknown command %q, expected %s, %s or %s", os.Args[1], modeServe, modePing, modeOpenAPI)
		}
	}
	return modeServe, nil
}
