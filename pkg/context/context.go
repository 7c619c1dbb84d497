package context

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type key string

const (
	RequestIDKey key = "request_id"
	StaffKey     key = "staff_username"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	requestID, ok := ctx.Value(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func WithStaff(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, StaffKey, username)
}

// GetStaff returns the authenticated staff username, or "" for anonymous requests.
func GetStaff(ctx context.Context) string {
	username, _ := ctx.Value(StaffKey).(string)
	return username
}

// FromFiberCtx carries the request ID, and the staff username when the token
// middleware ran, from the fiber locals into a standard context.
func FromFiberCtx(c *fiber.Ctx) context.Context {
	ctx := context.Background()

	requestID, ok := c.Locals("X-Request-ID").(string)
	if !ok || requestID == "" {
		requestID = c.Get("X-Request-ID")

		if requestID == "" {
			requestID = "unknown"
		}
	}
	ctx = WithRequestID(ctx, requestID)

	if username, ok := c.Locals(string(StaffKey)).(string); ok && username != "" {
		ctx = WithStaff(ctx, username)
	}

	return ctx
}
