package config

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	authHandler "github.com/varshasramu/Smart-library-assistant/internal/api/auth/handler"
	authService "github.com/varshasramu/Smart-library-assistant/internal/api/auth/service"
	borrowingHandler "github.com/varshasramu/Smart-library-assistant/internal/api/borrowing/handler"
	borrowingRepository "github.com/varshasramu/Smart-library-assistant/internal/api/borrowing/repository"
	borrowingService "github.com/varshasramu/Smart-library-assistant/internal/api/borrowing/service"
	catalogHandler "github.com/varshasramu/Smart-library-assistant/internal/api/catalog/handler"
	catalogRepository "github.com/varshasramu/Smart-library-assistant/internal/api/catalog/repository"
	catalogService "github.com/varshasramu/Smart-library-assistant/internal/api/catalog/service"
	voiceHandler "github.com/varshasramu/Smart-library-assistant/internal/api/voice/handler"
	voiceService "github.com/varshasramu/Smart-library-assistant/internal/api/voice/service"
	"github.com/varshasramu/Smart-library-assistant/internal/middleware"
	"github.com/varshasramu/Smart-library-assistant/pkg/bcrypt"
	"github.com/varshasramu/Smart-library-assistant/pkg/nlp"
	"github.com/varshasramu/Smart-library-assistant/pkg/redis"
	"github.com/varshasramu/Smart-library-assistant/pkg/utils"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	bcryptUtils bcrypt.IBcrypt
	handlers    []handler
	redisServer redis.IRedis
	interpreter nlp.IInterpreter
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.interpreter == nil {
		server.interpreter = nlp.NewInterpreter(nil)
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase(db *sqlx.DB) ServerOption {
	return func(s *Server) error {
		if db == nil {
			return fmt.Errorf("database connection is required")
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithInterpreter(interpreter nlp.IInterpreter) ServerOption {
	return func(s *Server) error {
		s.interpreter = interpreter
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() error {
	// Catalog Domain
	catalogRepo := catalogRepository.New(s.db, s.log)
	catalogServices := catalogService.New(s.log, catalogRepo, s.redisServer, s.utils)
	catalogHandlers := catalogHandler.New(s.log, catalogServices, s.validator, s.middleware)

	// Borrowing Domain
	borrowingRepo := borrowingRepository.New(s.db, s.log)
	borrowingServices := borrowingService.New(s.log, borrowingRepo, s.redisServer, s.utils)
	borrowingHandlers := borrowingHandler.New(s.log, borrowingServices, s.validator, s.middleware)

	// Staff Auth
	authServices, err := authService.New(s.log, s.bcryptUtils)
	if err != nil {
		return fmt.Errorf("failed to prepare staff accounts: %w", err)
	}
	authHandlers := authHandler.New(s.log, authServices, s.validator, s.middleware)

	// Voice Assistant
	voiceServices := voiceService.NewVoiceService(s.log, s.interpreter, catalogServices, borrowingServices)
	voiceHandlers := voiceHandler.New(s.log, s.validator, s.middleware, voiceServices)

	s.setupHealthCheck()
	s.setupMetrics()
	s.handlers = append(s.handlers, catalogHandlers, borrowingHandlers, authHandlers, voiceHandlers)

	return nil
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())
	router := s.engine.Group("/api/v1")

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.engine.ShutdownWithContext(ctx); err != nil {
		return err
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}

func (s *Server) setupMetrics() {
	s.engine.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
