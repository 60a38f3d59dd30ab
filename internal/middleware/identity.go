package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BrowserCookie names the cookie that identifies a browser across the flow.
// Every per-browser document of the key-value store lives under this id.
const (
	BrowserCookie = "browser_id"
	BrowserHeader = "X-Browser-ID"
	browserCtxKey = "browser_id"
)

// BrowserID makes sure every request carries a browser id.  An explicit
// X-Browser-ID header wins over the cookie; requests with neither get a
// fresh id and the cookie that keeps it.
func BrowserID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if h := c.Request().Header.Get(BrowserHeader); validID(h) {
				id = h
			} else if ck, err := c.Cookie(BrowserCookie); err == nil && validID(ck.Value) {
				id = ck.Value
			}
			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     BrowserCookie,
					Value:    id,
					Path:     "/",
					Expires:  time.Now().Add(365 * 24 * time.Hour),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(browserCtxKey, id)
			return next(c)
		}
	}
}

// Browser returns the id BrowserID attached, or "anon" outside of it.
func Browser(c echo.Context) string {
	if v, ok := c.Get(browserCtxKey).(string); ok && v != "" {
		return v
	}
	return "anon"
}

func validID(s string) bool {
	_, err := uuid.Parse(s)
	return s != "" && err == nil
}
