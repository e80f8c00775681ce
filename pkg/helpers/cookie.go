package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the HTTP-only cookie carrying the session token.
const SessionCookie = "token"

type CookieManager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *CookieManager {
	return &CookieManager{Domain: domain, Secure: secure}
}

// Set writes the session cookie. SameSite=None so the browser sends it from
// a front-end hosted on a different origin.
func (m *CookieManager) Set(c *gin.Context, token string, exp time.Time) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(SessionCookie, token, maxAgeFrom(exp), "/", m.Domain, m.Secure, true)
}

// Clear expires the session cookie immediately.
func (m *CookieManager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(SessionCookie, "", -1, "/", m.Domain, m.Secure, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
