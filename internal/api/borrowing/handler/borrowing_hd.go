package borrowingHandler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/varshasramu/Smart-library-assistant/internal/api/borrowing"
	borrowingService "github.com/varshasramu/Smart-library-assistant/internal/api/borrowing/service"
	contextPkg "github.com/varshasramu/Smart-library-assistant/pkg/context"
	"github.com/varshasramu/Smart-library-assistant/pkg/handlerUtil"
	"github.com/varshasramu/Smart-library-assistant/pkg/utils"
)

func (h *BorrowingHandler) HandleBorrowBook(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req borrowing.BorrowBookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res, err := h.borrowingService.BorrowBook(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "borrow_book")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, borrowing.MakeBorrowingResponse(res, h.borrowingService.Now()))
	}
}

func (h *BorrowingHandler) HandleReturnBorrowing(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	res, err := h.borrowingService.ReturnBorrowing(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "return_borrowing")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, borrowing.MakeBorrowingResponse(res, h.borrowingService.Now()))
	}
}

func (h *BorrowingHandler) HandleListBorrowings(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var filter borrowing.BorrowingFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_query")
	}

	if err := h.validator.Struct(filter); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	rows, err := h.borrowingService.ListBorrowings(c, filter.Status)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_borrowings")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, borrowing.MakeBorrowingsResponse(rows, h.borrowingService.Now()))
	}
}

func (h *BorrowingHandler) HandleGetDashboard(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	res, err := h.borrowingService.GetDashboard(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_dashboard")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *BorrowingHandler) HandleGetPopularTitles(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	limit := utils.ParseLimit(ctx.Query("limit"), borrowingService.DefaultPopularLimit, borrowingService.MaxPopularLimit)

	titles, err := h.borrowingService.GetPopularTitles(c, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_popular_titles")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, borrowing.PopularTitlesResponse{Titles: titles})
	}
}
