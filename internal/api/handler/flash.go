package handler

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const flashCookieName = "cp_flash"

// Notice is a one-shot message displayed on the next rendered page.
// Kind mirrors the original bootstrap-ish categories: success, info,
// warning, danger.
type Notice struct {
	Kind    string
	Message string
}

// setFlash queues a notice for the next request via a short-lived cookie.
func setFlash(c echo.Context, kind, message string) {
	value := base64.URLEncoding.EncodeToString([]byte(kind + "|" + message))
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
	})
}

// popFlash reads and clears the pending notice, if any.
func popFlash(c echo.Context) *Notice {
	cookie, err := c.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	raw, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(string(raw), "|")
	if !ok || message == "" {
		return nil
	}
	return &Notice{Kind: kind, Message: message}
}
