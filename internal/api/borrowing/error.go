package borrowing

import (
	"net/http"

	"github.com/varshasramu/Smart-library-assistant/pkg/response"
)

var (
	ErrBookNotFound             = response.NewError(http.StatusNotFound, "book not found")
	ErrBookUnavailable          = response.NewError(http.StatusConflict, "book is not available for borrowing")
	ErrBorrowingNotFound        = response.NewError(http.StatusNotFound, "borrowing not found")
	ErrBorrowingAlreadyReturned = response.NewError(http.StatusConflict, "borrowing already returned")
)
