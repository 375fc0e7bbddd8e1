package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/learnc/course-portal/internal/api/metrics"
	"github.com/learnc/course-portal/internal/core/domain"
	"github.com/learnc/course-portal/internal/core/ports"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "cp_session"

const contextKeyUser = "current_user"

// UserFrom returns the user attached by LoadUser, or nil for anonymous requests.
func UserFrom(c echo.Context) *domain.User {
	user, _ := c.Get(contextKeyUser).(*domain.User)
	return user
}

// LoadUser resolves the session cookie into a user and stores it in the
// request context. It never rejects: a missing or invalid session simply
// leaves the request anonymous. Gate decisions belong to RequireUser and
// RequireGuest.
func LoadUser(gate ports.SessionGate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			user, err := gate.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				metrics.SessionResolutionsTotal.WithLabelValues("miss").Inc()
				return next(c)
			}

			metrics.SessionResolutionsTotal.WithLabelValues("hit").Inc()
			c.Set(contextKeyUser, user)
			return next(c)
		}
	}
}

// RequireUser redirects anonymous requests to the login page, preserving the
// originally requested path in the next query parameter so it can be resumed
// after login.
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if UserFrom(c) == nil {
			target := "/login?next=" + url.QueryEscape(c.Request().URL.RequestURI())
			return c.Redirect(http.StatusSeeOther, target)
		}
		return next(c)
	}
}

// RequireGuest redirects already-authenticated requests to the dashboard.
// Used on the login and register pages.
func RequireGuest(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if UserFrom(c) != nil {
			return c.Redirect(http.StatusSeeOther, "/dashboard")
		}
		return next(c)
	}
}
