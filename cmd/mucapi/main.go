// Package main implements the MUC admin API entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/wake/snikket-web-portal/internal/adapter/docker"
	"github.com/wake/snikket-web-portal/internal/api"
	"github.com/wake/snikket-web-portal/internal/audit"
	"github.com/wake/snikket-web-portal/internal/auth"
	"github.com/wake/snikket-web-portal/internal/command"
	"github.com/wake/snikket-web-portal/internal/config"
	"github.com/wake/snikket-web-portal/internal/logging"
)

const (
	ServiceName = "mucapi"
	Version     = "1.0.0"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet(ServiceName, pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "path to YAML config file (default $"+config.PathEnv+")")
	envFile := flags.String("env-file", ".env", "dotenv file loaded before reading the environment")
	showVersion := flags.Bool("version", false, "print version and exit")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if *showVersion {
		fmt.Printf("%s %s\n", ServiceName, Version)
		return nil
	}

	// A missing .env file is normal outside development.
	_ = godotenv.Load(*envFile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, ServiceName)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	logger.Info("Starting MUC admin API", zap.String("version", Version))

	shell := docker.New(docker.Config{
		Runtime:   cfg.Prosody.Runtime,
		Container: cfg.Prosody.Container,
		Shell:     cfg.Prosody.Shell,
		KillGrace: cfg.Prosody.KillGrace,
	}, logger)
	logger.Info("Shell adapter initialized",
		zap.String("runtime", cfg.Prosody.Runtime),
		zap.String("container", cfg.Prosody.Container))

	orchestrator := command.NewOrchestrator(shell, cfg.MucDomains(), cfg.Prosody.CommandTimeout)
	orchestrator.SetLogger(logger)

	if cfg.Audit.Enabled {
		auditLogger, err := audit.NewLogger(audit.Options{
			Dir:        cfg.Audit.Dir,
			MaxSizeMB:  cfg.Audit.MaxSizeMB,
			MaxBackups: cfg.Audit.MaxBackups,
			MaxAgeDays: cfg.Audit.MaxAgeDays,
			Compress:   cfg.Audit.Compress,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize audit logger: %w", err)
		}
		defer func() {
			if err := auditLogger.Close(); err != nil {
				logger.Warn("Error closing audit logger", zap.Error(err))
			}
		}()
		orchestrator.SetAuditLogger(auditLogger)
		logger.Info("Audit logger initialized", zap.String("path", auditLogger.GetFilePath()))
	}

	var server *api.Server
	if cfg.Auth.Enabled {
		verifier, err := auth.NewVerifier(auth.VerifierConfig{
			Algorithm:    cfg.Auth.Algorithm,
			SecretKey:    cfg.Auth.SecretKey,
			PublicKeyPEM: cfg.Auth.PublicKeyPEM,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize token verifier: %w", err)
		}
		server = api.NewServerWithAuth(orchestrator, auth.NewMiddleware(verifier), logger,
			cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.IdleTimeout)
		logger.Info("Bearer token authentication enabled", zap.String("algorithm", cfg.Auth.Algorithm))
	} else {
		server = api.NewServer(orchestrator, logger,
			cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.IdleTimeout)
		if cfg.Server.AllowNonLoopback {
			logger.Warn("API exposed beyond loopback without authentication", zap.String("addr", cfg.Server.Addr))
		}
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start(cfg.Server.Addr)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case sig := <-shutdown:
		logger.Info("Received signal, initiating graceful shutdown", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil {
			return err
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Prosody.CommandTimeout+cfg.Prosody.KillGrace+5*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Error("Error stopping HTTP server", zap.Error(err))
		return err
	}
	logger.Info("MUC admin API shutdown complete")
	return nil
}
