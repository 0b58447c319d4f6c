package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/crumbworks/pantryplan/internal/api"
	"github.com/crumbworks/pantryplan/internal/cli"
	"github.com/crumbworks/pantryplan/internal/config"
	"github.com/crumbworks/pantryplan/internal/db"
	"github.com/crumbworks/pantryplan/internal/generator"
	"github.com/crumbworks/pantryplan/internal/logging"
	"github.com/crumbworks/pantryplan/internal/services"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if len(os.Args) > 1 {
		runCommand(cfg, os.Args[1], os.Args[2:])
		return
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	database, err := db.OpenSQLite(cfg.Database.Path)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	handler := api.NewHandler(database, buildGenerator(cfg, logger), cfg.Auth.SecretKey, cfg.Auth.TokenTTL, false, logger)

	app := fiber.New(fiber.Config{
		AppName:               "pantryplan",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New())

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("pantryplan listening",
		zap.String("port", cfg.Server.Port),
		zap.String("db", cfg.Database.Path))
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

// buildGenerator wires the plan generator from config: OpenRouter when an
// API key is present, the offline Local generator otherwise, and a redis
// cache in front when an address is configured.
func buildGenerator(cfg *config.Config, logger *zap.Logger) services.PlanGenerator {
	var planGenerator generator.Generator
	if cfg.Generator.APIKey != "" {
		planGenerator = generator.NewOpenRouter(cfg.Generator, logger)
	} else {
		logger.Warn("no generator API key set, using the offline plan generator")
		planGenerator = generator.NewLocal()
	}

	if cfg.Cache.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		planGenerator = generator.NewCached(planGenerator, client, cfg.Cache.TTL, logger)
	}
	return planGenerator
}

func runCommand(cfg *config.Config, command string, args []string) {
	switch command {
	case "reset-password", "set-password":
		flags := flag.NewFlagSet(command, flag.ExitOnError)
		email := flags.String("email", "", "account email address")
		dbPath := flags.String("db", cfg.Database.Path, "sqlite database path")
		if err := flags.Parse(args); err != nil {
			os.Exit(2)
		}

		var err error
		if command == "reset-password" {
			err = cli.RunResetPasswordCommand(*dbPath, *email)
		} else {
			err = cli.RunSetPasswordCommand(*dbPath, *email)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s failed: %v\n", command, err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (expected reset-password or set-password)\n", command)
		os.Exit(2)
	}
}
