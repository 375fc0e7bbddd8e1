package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/learnc/course-portal/internal/api/middleware"
	"github.com/learnc/course-portal/internal/core/domain"
)

// currentUser returns the user resolved by the session middleware, or nil for
// anonymous requests. Handlers behind RequireUser can assume non-nil.
func currentUser(c echo.Context) *domain.User {
	return middleware.UserFrom(c)
}
