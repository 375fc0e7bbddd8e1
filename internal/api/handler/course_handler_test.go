package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/learnc/course-portal/internal/core/domain"
	"github.com/learnc/course-portal/internal/core/service"
)

func TestCourseHandler_Index(t *testing.T) {
	e := newTestEcho()
	h := NewCourseHandler(service.NewCatalogService())

	// Anonymous → login.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Index(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("anonymous index must redirect to /login, got %q", loc)
	}

	// Authenticated → dashboard.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set("current_user", &domain.User{ID: "u1"})
	if err := h.Index(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/dashboard" {
		t.Fatalf("authenticated index must redirect to /dashboard, got %q", loc)
	}
}

func TestCourseHandler_Dashboard(t *testing.T) {
	e := newTestEcho()
	h := NewCourseHandler(service.NewCatalogService())

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("current_user", &domain.User{ID: "u1", Email: "alice@x.com"})

	if err := h.Dashboard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "dashboard" {
		t.Fatalf("expected dashboard page, got %q", rec.Body.String())
	}
}

func TestCourseHandler_PartDetail_Unknown(t *testing.T) {
	e := newTestEcho()
	h := NewCourseHandler(service.NewCatalogService())

	for _, id := range []string{"99", "0", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/parts/"+id, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/parts/:id")
		c.SetParamNames("id")
		c.SetParamValues(id)

		err := h.PartDetail(c)
		if !errors.Is(err, domain.ErrPartNotFound) {
			t.Fatalf("id %q: expected ErrPartNotFound, got %v", id, err)
		}
	}
}

func TestCourseHandler_PartDetail_Found(t *testing.T) {
	e := newTestEcho()
	h := NewCourseHandler(service.NewCatalogService())

	req := httptest.NewRequest(http.MethodGet, "/parts/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/parts/:id")
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("current_user", &domain.User{ID: "u1"})

	if err := h.PartDetail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "part_detail" {
		t.Fatalf("expected part_detail page, got %q", rec.Body.String())
	}
}

func TestCourseHandler_StartPart(t *testing.T) {
	e := newTestEcho()
	h := NewCourseHandler(service.NewCatalogService())

	req := httptest.NewRequest(http.MethodPost, "/parts/2/start", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/parts/:id/start")
	c.SetParamNames("id")
	c.SetParamValues("2")

	if err := h.StartPart(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", loc)
	}

	flash := cookieByName(rec, flashCookieName)
	if flash == nil {
		t.Fatalf("expected a flash cookie")
	}

	// Starting an unknown part is a not-found, not an acknowledgement.
	req = httptest.NewRequest(http.MethodPost, "/parts/42/start", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetPath("/parts/:id/start")
	c.SetParamNames("id")
	c.SetParamValues("42")
	if err := h.StartPart(c); !errors.Is(err, domain.ErrPartNotFound) {
		t.Fatalf("expected ErrPartNotFound, got %v", err)
	}
}

func TestFlash_SetAndPopRoundtrip(t *testing.T) {
	e := newTestEcho()

	// First response sets the flash cookie.
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	setFlash(c, "success", "Welcome back!")

	flash := cookieByName(rec, flashCookieName)
	if flash == nil {
		t.Fatalf("expected flash cookie to be set")
	}

	// Next request carries it; popFlash decodes and clears it.
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: flashCookieName, Value: flash.Value})
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	notice := popFlash(c)
	if notice == nil || notice.Kind != "success" || notice.Message != "Welcome back!" {
		t.Fatalf("unexpected notice: %+v", notice)
	}

	cleared := cookieByName(rec, flashCookieName)
	if cleared == nil || cleared.MaxAge != -1 {
		t.Fatalf("popFlash must clear the cookie, got %+v", cleared)
	}

	// No cookie → no notice.
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if popFlash(c) != nil {
		t.Fatalf("expected nil notice without a cookie")
	}

	// Garbage cookie → no notice.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: flashCookieName, Value: "not base64 !!"})
	c = e.NewContext(req, httptest.NewRecorder())
	if popFlash(c) != nil {
		t.Fatalf("expected nil notice for undecodable cookie")
	}
}
