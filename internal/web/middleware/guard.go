package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/canteen-system/canteen-console/internal/metrics"
	"github.com/canteen-system/canteen-console/internal/web/guard"
)

// Guard gates a route by authentication and, when requiredRole is
// non-empty, by role. The decision itself lives in guard.Evaluate; this
// middleware only translates it into an HTTP response: 303 for redirects
// so the browser re-issues the navigation as a GET.
func Guard(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := CurrentSession(c)
			state := guard.State{
				// Restore ran to completion in the Session middleware, so
				// a request never observes the loading state.
				Loading:       false,
				Authenticated: sess.IsAuthenticated(),
				Role:          sess.Role(),
			}

			switch decision := guard.Evaluate(state, requiredRole); decision.Action {
			case guard.Allow:
				metrics.GuardDecisionsTotal.WithLabelValues("allow").Inc()
				return next(c)
			case guard.RedirectToLogin:
				metrics.GuardDecisionsTotal.WithLabelValues("redirect_login").Inc()
				return c.Redirect(http.StatusSeeOther, decision.Target)
			case guard.RedirectToRoleHome:
				metrics.GuardDecisionsTotal.WithLabelValues("redirect_home").Inc()
				return c.Redirect(http.StatusSeeOther, decision.Target)
			default:
				metrics.GuardDecisionsTotal.WithLabelValues("pending").Inc()
				return c.Render(http.StatusOK, "pending.html", map[string]any{"Title": "Loading"})
			}
		}
	}
}
