package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/varshasramu/Smart-library-assistant/database/postgres"
	"github.com/varshasramu/Smart-library-assistant/internal/config"
	"github.com/varshasramu/Smart-library-assistant/pkg/log"
	"github.com/varshasramu/Smart-library-assistant/pkg/nlp"
	"github.com/varshasramu/Smart-library-assistant/pkg/redis"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded, using process environment: %v", err)
	}

	ctx := context.Background()

	db, err := postgres.New()
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	if os.Getenv("SEED_CATALOG") == "true" {
		if err := postgres.Seed(ctx, db, logger, time.Now()); err != nil {
			logger.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	kb := nlp.MustDefaultKnowledgeBase()
	if path := os.Getenv("VOICE_KNOWLEDGE_PATH"); path != "" {
		kb, err = nlp.LoadKnowledgeBaseFile(path)
		if err != nil {
			logger.Fatalf("Failed to load voice knowledge base: %v", err)
		}
		logger.WithField("path", path).Info("Loaded voice knowledge base")
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	redisServer := redis.New()

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithDatabase(db),
		config.WithRedisServer(redisServer),
		config.WithInterpreter(nlp.NewInterpreter(kb)),
		config.WithMiddleware(),
		config.WithBcryptUtils(),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	if err := server.RegisterHandler(); err != nil {
		logger.Fatal(err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
