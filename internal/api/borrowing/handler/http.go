package borrowingHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	borrowingService "github.com/varshasramu/Smart-library-assistant/internal/api/borrowing/service"
	"github.com/varshasramu/Smart-library-assistant/internal/middleware"
)

type BorrowingHandler struct {
	log              *logrus.Logger
	borrowingService borrowingService.BorrowingService
	validator        *validator.Validate
	middleware       middleware.Middleware
}

func New(
	log *logrus.Logger,
	bs borrowingService.BorrowingService,
	validate *validator.Validate,
	middleware middleware.Middleware) *BorrowingHandler {
	return &BorrowingHandler{
		log:              log,
		borrowingService: bs,
		validator:        validate,
		middleware:       middleware,
	}
}

func (h *BorrowingHandler) Start(srv fiber.Router) {
	borrowings := srv.Group("/borrowings")
	borrowings.Post("", h.HandleBorrowBook)
	borrowings.Get("/popular", h.HandleGetPopularTitles)
	borrowings.Get("", h.middleware.NewTokenMiddleware, h.HandleListBorrowings)
	borrowings.Get("/dashboard", h.middleware.NewTokenMiddleware, h.HandleGetDashboard)
	borrowings.Patch("/:id/return", h.middleware.NewTokenMiddleware, h.HandleReturnBorrowing)
}
