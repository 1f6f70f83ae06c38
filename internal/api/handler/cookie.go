package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ai-quiz-app/quiz-api/internal/api/middleware"
)

const cookieMaxAge = 7 * 24 * time.Hour

// CookieManager writes and clears the session cookie. Attributes follow the
// deployment environment: Secure and SameSite=Strict in production,
// SameSite=Lax in development so local HTTP flows keep working.
type CookieManager struct {
	production bool
}

func NewCookieManager(production bool) *CookieManager {
	return &CookieManager{production: production}
}

func (m *CookieManager) Set(c echo.Context, token string) {
	c.SetCookie(m.build(token, int(cookieMaxAge.Seconds())))
}

// Clear expires the cookie. Attributes must match those used when setting
// it or browsers will keep the stale copy.
func (m *CookieManager) Clear(c echo.Context) {
	c.SetCookie(m.build("", -1))
}

func (m *CookieManager) build(token string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if m.production {
		sameSite = http.SameSiteStrictMode
	}
	return &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/api",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.production,
		SameSite: sameSite,
	}
}
