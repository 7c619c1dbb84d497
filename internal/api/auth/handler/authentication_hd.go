package authHandler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/varshasramu/Smart-library-assistant/internal/api/auth"
	contextPkg "github.com/varshasramu/Smart-library-assistant/pkg/context"
	"github.com/varshasramu/Smart-library-assistant/pkg/handlerUtil"
	jwtPkg "github.com/varshasramu/Smart-library-assistant/pkg/jwt"
)

func (h *AuthHandler) HandleLogin(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req auth.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res, err := h.authService.Login(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "login")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *AuthHandler) HandleGetMe(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	staff, err := jwtPkg.GetStaffLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized, staff session not found")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, auth.StaffResponse{
		Username: staff.Username,
		Role:     staff.Role,
	})
}
