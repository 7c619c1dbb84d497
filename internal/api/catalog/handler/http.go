package catalogHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	catalogService "github.com/varshasramu/Smart-library-assistant/internal/api/catalog/service"
	"github.com/varshasramu/Smart-library-assistant/internal/middleware"
)

type CatalogHandler struct {
	log            *logrus.Logger
	catalogService catalogService.CatalogService
	validator      *validator.Validate
	middleware     middleware.Middleware
}

func New(
	log *logrus.Logger,
	cs catalogService.CatalogService,
	validate *validator.Validate,
	middleware middleware.Middleware) *CatalogHandler {
	return &CatalogHandler{
		log:            log,
		catalogService: cs,
		validator:      validate,
		middleware:     middleware,
	}
}

func (h *CatalogHandler) Start(srv fiber.Router) {
	books := srv.Group("/books")
	books.Get("", h.HandleListBooks)
	books.Get("/stats", h.HandleGetStats)
	books.Get("/recommendations", h.HandleGetRecommendations)
	books.Get("/newest", h.HandleGetNewestBooks)
	books.Get("/:id", h.HandleGetBook)
	books.Post("", h.middleware.NewTokenMiddleware, h.HandleCreateBook)
	books.Delete("/:id", h.middleware.NewTokenMiddleware, h.middleware.NewAdminMiddleware, h.HandleDeleteBook)
}
