package voiceHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	voiceService "github.com/varshasramu/Smart-library-assistant/internal/api/voice/service"
	"github.com/varshasramu/Smart-library-assistant/internal/middleware"
)

type VoiceHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	voiceService voiceService.IVoiceService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	vs voiceService.IVoiceService,
) *VoiceHandler {
	return &VoiceHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		voiceService: vs,
	}
}

func (h *VoiceHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	voice := srv.Group("/voice")
	voice.Post("/command", h.middleware.NewRateLimiter, h.ProcessVoiceCommand)
	voice.Get("/capabilities", h.GetCapabilities)

	voice.Use("/ws", h.middleware.NewRateLimiter, wsMiddleware)
	voice.Get("/ws", websocket.New(h.handleVoiceWebSocket))
}
