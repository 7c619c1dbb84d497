package catalog

import (
	"net/http"

	"github.com/varshasramu/Smart-library-assistant/pkg/response"
)

var (
	ErrBookNotFound    = response.NewError(http.StatusNotFound, "book not found")
	ErrBookIDRequired  = response.NewError(http.StatusBadRequest, "book id is required")
	ErrCatalogNotReady = response.NewError(http.StatusServiceUnavailable, "catalog is not available")
)
