package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/canteen-system/canteen-console/internal/core/domain"
)

// errorPage feeds the error screen for anything a handler did not
// normalize into an inline message.
type errorPage struct {
	Title   string
	Status  int
	Message string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Sends unknown paths to the login screen, the navigation catch-all.
//   - Logs unexpected errors internally without leaking details.
//   - Renders the error screen for everything else.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Code == http.StatusNotFound {
				_ = c.Redirect(http.StatusSeeOther, "/login")
				return
			}
			_ = c.Render(he.Code, "error.html", errorPage{
				Title:   "Error",
				Status:  he.Code,
				Message: fmt.Sprintf("%v", he.Message),
			})
			return
		}

		// Upstream failures that escaped a handler still render with the
		// server-supplied message rather than blanking the screen.
		var re *domain.RemoteError
		if errors.As(err, &re) {
			_ = c.Render(http.StatusBadGateway, "error.html", errorPage{
				Title:   "Error",
				Status:  http.StatusBadGateway,
				Message: domain.ErrorMessage(err, "The canteen service is unavailable"),
			})
			return
		}

		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")

		_ = c.Render(http.StatusInternalServerError, "error.html", errorPage{
			Title:   "Error",
			Status:  http.StatusInternalServerError,
			Message: "internal server error",
		})
	}
}
