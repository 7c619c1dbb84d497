package authHandler

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gobcrypt "golang.org/x/crypto/bcrypt"

	"github.com/varshasramu/Smart-library-assistant/internal/api/auth"
	authService "github.com/varshasramu/Smart-library-assistant/internal/api/auth/service"
	"github.com/varshasramu/Smart-library-assistant/internal/entity"
	"github.com/varshasramu/Smart-library-assistant/internal/middleware"
	"github.com/varshasramu/Smart-library-assistant/pkg/bcrypt"
	jwtPkg "github.com/varshasramu/Smart-library-assistant/pkg/jwt"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv(jwtPkg.AccessTokenSecret, "test-secret")

	log := logrus.New()
	log.SetOutput(io.Discard)

	svc, err := authService.New(log, bcrypt.NewWithCost(gobcrypt.MinCost))
	require.NoError(t, err)

	app := fiber.New()
	m := middleware.New(log)
	app.Use(m.NewRequestIDMiddleware())
	New(log, svc, validator.New(), m).Start(app.Group("/api/v1"))

	return app
}

func send(t *testing.T, app *fiber.App, method, path, body, token string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestLoginThenMe(t *testing.T) {
	app := newTestApp(t)

	status, raw := send(t, app, fiber.MethodPost, "/api/v1/auth/login", `{"username":"admin","password":"library123"}`, "")
	require.Equal(t, fiber.StatusOK, status)

	var login auth.LoginResponse
	require.NoError(t, jsoniter.Unmarshal(raw, &login))
	assert.Equal(t, entity.RoleAdministrator, login.Role)
	require.NotEmpty(t, login.AccessToken)

	status, raw = send(t, app, fiber.MethodGet, "/api/v1/auth/me", "", login.AccessToken)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"username":"admin","role":"Administrator"}`, string(raw))
}

func TestLoginFailures(t *testing.T) {
	app := newTestApp(t)

	status, _ := send(t, app, fiber.MethodPost, "/api/v1/auth/login", `{"username":"admin","password":"nope"}`, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = send(t, app, fiber.MethodPost, "/api/v1/auth/login", `{"username":"admin"}`, "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = send(t, app, fiber.MethodGet, "/api/v1/auth/me", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
