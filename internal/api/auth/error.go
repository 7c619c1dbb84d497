package auth

import (
	"net/http"

	"github.com/varshasramu/Smart-library-assistant/pkg/response"
)

var (
	ErrInvalidCredentials = response.NewError(http.StatusUnauthorized, "username or password is wrong")
)
