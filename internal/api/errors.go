package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/growthkit/linkedin-assistant/internal/backend"
)

// errNotFound marks lookups of ids that do not exist.
var errNotFound = errors.New("not found")

type errorResponse struct {
	Error string `json:"error"`
}

// mapError converts an error into an echo.HTTPError with a user-facing message.
func mapError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	var apiErr *backend.APIError

	switch {
	case errors.As(err, &he):
		return he

	case errors.Is(err, errNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")

	case errors.Is(err, backend.ErrMissingAPIKey):
		return echo.NewHTTPError(http.StatusPreconditionFailed, "LinkedIn API key is not configured")

	case errors.As(err, &apiErr):
		return echo.NewHTTPError(http.StatusBadGateway, apiErr.Error())

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
