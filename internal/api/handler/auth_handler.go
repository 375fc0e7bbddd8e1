package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/learnc/course-portal/internal/api/metrics"
	"github.com/learnc/course-portal/internal/api/middleware"
	"github.com/learnc/course-portal/internal/core/domain"
	"github.com/learnc/course-portal/internal/core/ports"
)

// AuthHandler serves the register, login, and logout pages.
type AuthHandler struct {
	accounts   ports.AccountService
	gate       ports.SessionGate
	sessionTTL time.Duration
}

func NewAuthHandler(accounts ports.AccountService, gate ports.SessionGate, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{accounts: accounts, gate: gate, sessionTTL: sessionTTL}
}

type registerForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
	Confirm  string `form:"confirm"`
}

type loginForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return renderRegister(c, "", nil)
}

// Register handles a registration submission. Each failure kind re-renders
// the form with its own notice; success redirects to the login page.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return renderRegister(c, form.Email, &Notice{Kind: "danger", Message: "Invalid form submission."})
	}
	if err := c.Validate(&form); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("missing_fields").Inc()
		return renderRegister(c, form.Email, &Notice{Kind: "danger", Message: capitalize(err.Error()) + "."})
	}

	_, err := h.accounts.Register(c.Request().Context(), form.Email, form.Password, form.Confirm)
	switch {
	case err == nil:
		metrics.RegistrationsTotal.WithLabelValues("success").Inc()
		setFlash(c, "success", "Account created. Please log in.")
		return c.Redirect(http.StatusSeeOther, "/login")
	case errors.Is(err, domain.ErrMissingFields):
		metrics.RegistrationsTotal.WithLabelValues("missing_fields").Inc()
		return renderRegister(c, form.Email, &Notice{Kind: "danger", Message: "Email and password are required."})
	case errors.Is(err, domain.ErrPasswordMismatch):
		metrics.RegistrationsTotal.WithLabelValues("password_mismatch").Inc()
		return renderRegister(c, form.Email, &Notice{Kind: "danger", Message: "Passwords do not match."})
	case errors.Is(err, domain.ErrEmailTaken):
		metrics.RegistrationsTotal.WithLabelValues("email_taken").Inc()
		return renderRegister(c, form.Email, &Notice{Kind: "warning", Message: "Email already registered."})
	default:
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return renderLogin(c, "", c.QueryParam("next"), nil)
}

// Login handles a credential submission. On success a session cookie is set
// and the client is sent to the next destination or the dashboard. All
// failures show the same generic notice.
func (h *AuthHandler) Login(c echo.Context) error {
	next := c.QueryParam("next")

	var form loginForm
	if err := c.Bind(&form); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return renderLogin(c, form.Email, next, &Notice{Kind: "danger", Message: "Invalid form submission."})
	}
	if err := c.Validate(&form); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return renderLogin(c, form.Email, next, &Notice{Kind: "danger", Message: "Invalid credentials."})
	}

	token, _, err := h.gate.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return renderLogin(c, form.Email, next, &Notice{Kind: "danger", Message: "Invalid credentials."})
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	setFlash(c, "success", "Welcome back!")
	return c.Redirect(http.StatusSeeOther, safeNext(next))
}

// Logout revokes the current session and clears the cookie. Safe to call
// with a missing or stale cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		_ = h.gate.Logout(c.Request().Context(), cookie.Value)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	setFlash(c, "info", "Signed out successfully.")
	return c.Redirect(http.StatusSeeOther, "/login")
}

// safeNext only honours local paths as the post-login destination, so the
// next parameter cannot be abused for open redirects.
func safeNext(next string) string {
	if decoded, err := url.QueryUnescape(next); err == nil {
		next = decoded
	}
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/dashboard"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func renderRegister(c echo.Context, email string, notice *Notice) error {
	if notice == nil {
		notice = popFlash(c)
	}
	return c.Render(http.StatusOK, "register", echo.Map{
		"Title": "Register",
		"Email": email,
		"Flash": notice,
	})
}

func renderLogin(c echo.Context, email, next string, notice *Notice) error {
	if notice == nil {
		notice = popFlash(c)
	}
	return c.Render(http.StatusOK, "login", echo.Map{
		"Title": "Log in",
		"Email": email,
		"Next":  url.QueryEscape(next),
		"Flash": notice,
	})
}
