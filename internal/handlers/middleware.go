package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName = "session"
	ctxUserIDKey      = "userId"
)

// requireSession authenticates the request from the session cookie. Missing
// or invalid sessions are redirected to the login page and the request is
// aborted before any handler runs.
func (h *Handler) requireSession(c *gin.Context) {
	token, err := c.Cookie(sessionCookieName)
	if err != nil || token == "" {
		h.redirectToLogin(c)
		return
	}

	userID, err := h.services.ParseToken(token)
	if err != nil {
		if h.log != nil {
			h.log.Infow("session_rejected", "err", err)
		}
		h.redirectToLogin(c)
		return
	}

	c.Set(ctxUserIDKey, userID)
	c.Next()
}

func (h *Handler) redirectToLogin(c *gin.Context) {
	setFlash(c, flashInfo, "Please log in to access this page.")
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}

// currentUserID returns the authenticated user set by requireSession.
func currentUserID(c *gin.Context) int {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return 0
	}
	id, _ := v.(int)
	return id
}

// noCacheHeaders disables client and proxy caching on every response, so a
// back-navigation after logout never shows a stale protected page.
func noCacheHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, post-check=0, pre-check=0, max-age=0")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}
