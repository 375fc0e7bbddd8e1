package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/learnc/course-portal/internal/api/middleware"
	"github.com/learnc/course-portal/internal/core/domain"
)

// nameRenderer writes just the template name, so tests can assert which page
// was rendered without caring about markup.
type nameRenderer struct{}

func (nameRenderer) Render(w io.Writer, name string, _ interface{}, _ echo.Context) error {
	_, err := io.WriteString(w, name)
	return err
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Renderer = nameRenderer{}
	e.Validator = NewValidator()
	return e
}

type stubAccounts struct {
	registerFn func(ctx context.Context, email, password, confirm string) (*domain.User, error)
}

func (s *stubAccounts) Register(ctx context.Context, email, password, confirm string) (*domain.User, error) {
	return s.registerFn(ctx, email, password, confirm)
}

func (s *stubAccounts) Authenticate(context.Context, string, string) (*domain.User, error) {
	panic("not used")
}

type stubGate struct {
	loginFn  func(ctx context.Context, email, password string) (string, *domain.User, error)
	logoutFn func(ctx context.Context, token string) error
}

func (s *stubGate) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubGate) Resolve(context.Context, string) (*domain.User, error) {
	panic("not used")
}

func (s *stubGate) Logout(ctx context.Context, token string) error {
	if s.logoutFn != nil {
		return s.logoutFn(ctx, token)
	}
	return nil
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	accounts := &stubAccounts{
		registerFn: func(_ context.Context, email, password, confirm string) (*domain.User, error) {
			if email != "alice@x.com" || password != "pass123" || confirm != "pass123" {
				t.Fatalf("unexpected args: %s %s %s", email, password, confirm)
			}
			return &domain.User{ID: "u1", Email: email}, nil
		},
	}
	h := NewAuthHandler(accounts, &stubGate{}, time.Hour)

	req := formRequest(http.MethodPost, "/register", url.Values{
		"email":    {"alice@x.com"},
		"password": {"pass123"},
		"confirm":  {"pass123"},
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	if cookieByName(rec, flashCookieName) == nil {
		t.Fatalf("expected a flash cookie on successful registration")
	}
}

func TestAuthHandler_Register_FailureKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"password mismatch", domain.ErrPasswordMismatch},
		{"email taken", domain.ErrEmailTaken},
		{"missing fields", domain.ErrMissingFields},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			accounts := &stubAccounts{
				registerFn: func(context.Context, string, string, string) (*domain.User, error) {
					return nil, tc.err
				},
			}
			h := NewAuthHandler(accounts, &stubGate{}, time.Hour)

			req := formRequest(http.MethodPost, "/register", url.Values{
				"email":    {"alice@x.com"},
				"password": {"pw1"},
				"confirm":  {"pw2"},
			})
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := h.Register(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected form re-render, got status %d", rec.Code)
			}
			if rec.Body.String() != "register" {
				t.Fatalf("expected register page, got %q", rec.Body.String())
			}
		})
	}
}

func TestAuthHandler_Register_EmptyFormRerenders(t *testing.T) {
	e := newTestEcho()
	accounts := &stubAccounts{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			t.Fatalf("service must not be called when validation fails")
			return nil, nil
		},
	}
	h := NewAuthHandler(accounts, &stubGate{}, time.Hour)

	req := formRequest(http.MethodPost, "/register", url.Values{})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "register" {
		t.Fatalf("expected register page, got %q", rec.Body.String())
	}
}

func TestAuthHandler_Login_SuccessSetsCookieAndHonoursNext(t *testing.T) {
	e := newTestEcho()
	gate := &stubGate{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@x.com" || password != "pass123" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "signed-token", &domain.User{ID: "u1", Email: email}, nil
		},
	}
	h := NewAuthHandler(&stubAccounts{}, gate, time.Hour)

	req := formRequest(http.MethodPost, "/login?next=%2Fparts%2F3", url.Values{
		"email":    {"alice@x.com"},
		"password": {"pass123"},
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/parts/3" {
		t.Fatalf("expected redirect to next destination, got %q", loc)
	}

	session := cookieByName(rec, middleware.SessionCookieName)
	if session == nil || session.Value != "signed-token" {
		t.Fatalf("expected session cookie with token, got %+v", session)
	}
	if !session.HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}
}

func TestAuthHandler_Login_ExternalNextFallsBackToDashboard(t *testing.T) {
	e := newTestEcho()
	gate := &stubGate{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "signed-token", &domain.User{ID: "u1"}, nil
		},
	}
	h := NewAuthHandler(&stubAccounts{}, gate, time.Hour)

	req := formRequest(http.MethodPost, "/login?next=https%3A%2F%2Fevil.example", url.Values{
		"email":    {"alice@x.com"},
		"password": {"pass123"},
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/dashboard" {
		t.Fatalf("external next must fall back to /dashboard, got %q", loc)
	}
}

func TestAuthHandler_Login_InvalidCredentialsRerenders(t *testing.T) {
	e := newTestEcho()
	gate := &stubGate{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(&stubAccounts{}, gate, time.Hour)

	req := formRequest(http.MethodPost, "/login", url.Values{
		"email":    {"alice@x.com"},
		"password": {"wrong"},
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected form re-render, got status %d", rec.Code)
	}
	if rec.Body.String() != "login" {
		t.Fatalf("expected login page, got %q", rec.Body.String())
	}
	if cookieByName(rec, middleware.SessionCookieName) != nil {
		t.Fatalf("failed login must not set a session cookie")
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newTestEcho()
	revoked := ""
	gate := &stubGate{
		logoutFn: func(_ context.Context, token string) error {
			revoked = token
			return nil
		},
	}
	h := NewAuthHandler(&stubAccounts{}, gate, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "signed-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if revoked != "signed-token" {
		t.Fatalf("expected gate.Logout with the cookie token, got %q", revoked)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}

	session := cookieByName(rec, middleware.SessionCookieName)
	if session == nil || session.MaxAge != -1 {
		t.Fatalf("expected expired session cookie, got %+v", session)
	}
}

func TestAuthHandler_Logout_NoCookie(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAccounts{}, &stubGate{}, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
}
