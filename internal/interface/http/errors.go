package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/application"
	"blog-backend/pkg/response"
)

// errStatus maps the service sentinels onto HTTP status codes. Order matters
// only insofar as the first match wins.
var errStatus = []struct {
	err    error
	status int
}{
	{application.ErrMissingFields, http.StatusBadRequest},
	{application.ErrPasswordTooShort, http.StatusBadRequest},
	{application.ErrPasswordMismatch, http.StatusBadRequest},
	{application.ErrEmailTaken, http.StatusBadRequest},
	{application.ErrResetToken, http.StatusBadRequest},
	{application.ErrBadImagePayload, http.StatusBadRequest},

	{application.ErrInvalidCredentials, http.StatusUnauthorized},
	{application.ErrWrongPassword, http.StatusUnauthorized},
	{application.ErrNotOwner, http.StatusUnauthorized},

	{application.ErrUserNotFound, http.StatusNotFound},
	{application.ErrBlogNotFound, http.StatusNotFound},

	{application.ErrMediaUpload, http.StatusInternalServerError},
	{application.ErrMediaDestroy, http.StatusInternalServerError},
	{application.ErrEmailSend, http.StatusInternalServerError},
}

// failFromError is the single translation point from service errors to HTTP
// responses. Unknown errors never leak their message to the client.
func failFromError(c *gin.Context, err error) {
	for _, e := range errStatus {
		if errors.Is(err, e.err) {
			response.Fail(c, e.status, err.Error(), nil)
			return
		}
	}
	response.Fail(c, http.StatusInternalServerError, "internal server error", nil)
}
