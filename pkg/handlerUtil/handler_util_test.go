package handlerUtil

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varshasramu/Smart-library-assistant/pkg/response"
)

func TestErrorHandler_Handle(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	type payload struct {
		Name string `validate:"required"`
	}
	validationErr := validator.New().Struct(payload{})

	tests := []struct {
		name   string
		err    error
		status int
		code   string
		trace  bool
	}{
		{name: "domain error", err: response.NewError(fiber.StatusNotFound, "book not found"), status: fiber.StatusNotFound},
		{name: "wrapped domain error", err: errors.Join(errors.New("ctx"), response.NewError(fiber.StatusConflict, "taken")), status: fiber.StatusConflict},
		{name: "validation error", err: validationErr, status: fiber.StatusBadRequest, code: "VALIDATION_ERROR"},
		{name: "fiber error", err: fiber.ErrUnprocessableEntity, status: fiber.StatusUnprocessableEntity},
		{name: "unexpected error", err: errors.New("db down"), status: fiber.StatusInternalServerError, trace: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return New(logger).Handle(c, "req-1", tt.err, c.Path(), "test")
			})

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body ErrorResponse
			require.NoError(t, jsoniter.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
			assert.Equal(t, tt.code, body.Code)
			if tt.trace {
				assert.Equal(t, "req-1", body.TraceID)
			}
		})
	}
}
