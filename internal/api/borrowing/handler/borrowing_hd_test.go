package borrowingHandler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/varshasramu/Smart-library-assistant/internal/api/borrowing"
	"github.com/varshasramu/Smart-library-assistant/internal/entity"
	"github.com/varshasramu/Smart-library-assistant/internal/middleware"
	jwtPkg "github.com/varshasramu/Smart-library-assistant/pkg/jwt"
)

var testNow = time.Date(2025, 3, 20, 9, 30, 0, 0, time.UTC)

type MockBorrowingService struct {
	mock.Mock
}

func (m *MockBorrowingService) BorrowBook(ctx context.Context, req borrowing.BorrowBookRequest) (entity.Borrowing, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(entity.Borrowing), args.Error(1)
}

func (m *MockBorrowingService) ReturnBorrowing(ctx context.Context, id string) (entity.Borrowing, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entity.Borrowing), args.Error(1)
}

func (m *MockBorrowingService) ListBorrowings(ctx context.Context, status string) ([]entity.Borrowing, error) {
	args := m.Called(ctx, status)
	rows, _ := args.Get(0).([]entity.Borrowing)
	return rows, args.Error(1)
}

func (m *MockBorrowingService) GetDashboard(ctx context.Context) (borrowing.DashboardResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(borrowing.DashboardResponse), args.Error(1)
}

func (m *MockBorrowingService) GetPopularTitles(ctx context.Context, limit int) ([]borrowing.PopularTitle, error) {
	args := m.Called(ctx, limit)
	titles, _ := args.Get(0).([]borrowing.PopularTitle)
	return titles, args.Error(1)
}

func (m *MockBorrowingService) Now() time.Time {
	return testNow
}

func newTestApp(t *testing.T) (*fiber.App, *MockBorrowingService) {
	t.Helper()
	t.Setenv(jwtPkg.AccessTokenSecret, "test-secret")

	log := logrus.New()
	log.SetOutput(io.Discard)

	svc := new(MockBorrowingService)
	m := middleware.New(log)

	app := fiber.New(fiber.Config{StrictRouting: true, CaseSensitive: true})
	app.Use(m.NewRequestIDMiddleware())
	New(log, svc, validator.New(), m).Start(app.Group("/api/v1"))

	return app, svc
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string, staff bool) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if staff {
		token, _, err := jwtPkg.Sign(map[string]interface{}{"username": "librarian", "role": entity.RoleLibrarian}, time.Hour)
		require.NoError(t, err)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestHandleBorrowBook(t *testing.T) {
	t.Run("borrows without a staff token", func(t *testing.T) {
		app, svc := newTestApp(t)
		req := borrowing.BorrowBookRequest{BookID: "3", BorrowerName: "Ada Lovelace", BorrowerEmail: "ada@example.com"}

		svc.On("BorrowBook", mock.Anything, req).Return(entity.Borrowing{
			ID:         "b1",
			BookID:     "3",
			BookTitle:  "The Hobbit",
			BorrowDate: testNow,
			ReturnDate: testNow.Add(entity.LoanPeriod),
			Status:     entity.BorrowingActive,
		}, nil)

		status, raw := doRequest(t, app, fiber.MethodPost, "/api/v1/borrowings",
			`{"book_id":"3","borrower_name":"Ada Lovelace","borrower_email":"ada@example.com"}`, false)
		require.Equal(t, fiber.StatusCreated, status)

		var res borrowing.BorrowingResponse
		require.NoError(t, jsoniter.Unmarshal(raw, &res))
		assert.Equal(t, "active", res.Status)
		assert.False(t, res.Overdue)
	})

	t.Run("rejects a bad email", func(t *testing.T) {
		app, _ := newTestApp(t)

		status, _ := doRequest(t, app, fiber.MethodPost, "/api/v1/borrowings",
			`{"book_id":"3","borrower_name":"Ada","borrower_email":"not-an-email"}`, false)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("maps an unavailable book to conflict", func(t *testing.T) {
		app, svc := newTestApp(t)

		svc.On("BorrowBook", mock.Anything, mock.Anything).Return(entity.Borrowing{}, borrowing.ErrBookUnavailable)

		status, _ := doRequest(t, app, fiber.MethodPost, "/api/v1/borrowings",
			`{"book_id":"2","borrower_name":"Ada","borrower_email":"ada@example.com"}`, false)
		assert.Equal(t, fiber.StatusConflict, status)
	})
}

func TestHandleReturnBorrowingTwice(t *testing.T) {
	app, svc := newTestApp(t)

	svc.On("ReturnBorrowing", mock.Anything, "b1").Return(entity.Borrowing{}, borrowing.ErrBorrowingAlreadyReturned)

	status, raw := doRequest(t, app, fiber.MethodPatch, "/api/v1/borrowings/b1/return", "", true)

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, string(raw), "borrowing already returned")
}

func TestHandleListBorrowings(t *testing.T) {
	app, svc := newTestApp(t)

	status, _ := doRequest(t, app, fiber.MethodGet, "/api/v1/borrowings?status=overdue", "", false)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doRequest(t, app, fiber.MethodGet, "/api/v1/borrowings?status=late", "", true)
	assert.Equal(t, fiber.StatusBadRequest, status)

	svc.On("ListBorrowings", mock.Anything, "overdue").Return([]entity.Borrowing{
		{ID: "b1", Status: entity.BorrowingActive, ReturnDate: testNow.Add(-time.Hour)},
	}, nil)

	status, raw := doRequest(t, app, fiber.MethodGet, "/api/v1/borrowings?status=overdue", "", true)
	require.Equal(t, fiber.StatusOK, status)

	var res borrowing.BorrowingsResponse
	require.NoError(t, jsoniter.Unmarshal(raw, &res))
	require.Equal(t, 1, res.Total)
	assert.True(t, res.Borrowings[0].Overdue)
}

func TestHandleGetPopularTitles(t *testing.T) {
	app, svc := newTestApp(t)

	svc.On("GetPopularTitles", mock.Anything, 3).Return([]borrowing.PopularTitle{{BookID: "2", Title: "1984", BorrowCount: 4}}, nil)

	status, raw := doRequest(t, app, fiber.MethodGet, "/api/v1/borrowings/popular?limit=3", "", false)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"titles":[{"book_id":"2","title":"1984","borrow_count":4}]}`, string(raw))
}
