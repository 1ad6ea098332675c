package handlers

import (
	"encoding/base64"
	"encoding/json"

	"github.com/gin-gonic/gin"
)

// Flash message categories shown by the templates.
const (
	flashSuccess = "success"
	flashDanger  = "danger"
	flashInfo    = "info"
)

const (
	flashCookieName   = "flash"
	flashCookieMaxAge = 60 // seconds; one redirect hop is all it needs to survive
)

// flashMessage is a one-time notification carried to the next rendered page.
type flashMessage struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// setFlash stores a one-shot message in a short-lived cookie.
func setFlash(c *gin.Context, category, message string) {
	raw, err := json.Marshal(flashMessage{Category: category, Message: message})
	if err != nil {
		return
	}
	c.SetCookie(flashCookieName, base64.RawURLEncoding.EncodeToString(raw), flashCookieMaxAge, "/", "", false, true)
}

// takeFlash reads and clears the pending flash message, if any.
func takeFlash(c *gin.Context) *flashMessage {
	val, err := c.Cookie(flashCookieName)
	if err != nil || val == "" {
		return nil
	}
	// Clear regardless of whether the payload decodes.
	c.SetCookie(flashCookieName, "", -1, "/", "", false, true)

	raw, err := base64.RawURLEncoding.DecodeString(val)
	if err != nil {
		return nil
	}
	var f flashMessage
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	return &f
}
