package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	contextPkg "github.com/varshasramu/Smart-library-assistant/pkg/context"
	"github.com/varshasramu/Smart-library-assistant/pkg/handlerUtil"
	jwtPkg "github.com/varshasramu/Smart-library-assistant/pkg/jwt"
)

const unauthorizedMessage = "Unauthorized, access token invalid or expired"

// NewTokenMiddleware admits requests carrying a valid staff access token and
// stores the staff member in the fiber locals.
func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	requestID := m.GetRequestID(ctx)
	errHandler := handlerUtil.New(m.log)

	userToken, err := jwtPkg.VerifyTokenHeader(ctx, jwtPkg.AccessTokenSecret)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"client_ip":  ctx.IP(),
			"error":      err.Error(),
		}).Warn("Token verification failed")
		return errHandler.HandleUnauthorized(ctx, requestID, unauthorizedMessage)
	}

	staff, err := jwtPkg.StaffFromClaims(userToken)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Token claims check")
		return errHandler.HandleUnauthorized(ctx, requestID, unauthorizedMessage)
	}

	ctx.Locals(jwtPkg.StaffLocalsKey, staff)
	ctx.Locals(string(contextPkg.StaffKey), staff.Username)

	m.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"username":   staff.Username,
		"role":       staff.Role,
	}).Debug("Authentication successful")

	return ctx.Next()
}

// NewAdminMiddleware must run after NewTokenMiddleware.
func (m *middleware) NewAdminMiddleware(ctx *fiber.Ctx) error {
	requestID := m.GetRequestID(ctx)
	errHandler := handlerUtil.New(m.log)

	staff, err := jwtPkg.GetStaffLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, unauthorizedMessage)
	}

	if !staff.IsAdministrator() {
		return errHandler.HandleForbidden(ctx, requestID, "Administrator role required")
	}

	return ctx.Next()
}
