package handlers

import (
	"errors"
	"net/http"

	"riskscreen/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// Single, shared credentials payload for both registration and login forms.
type credentialsForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (h *Handler) registerForm(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", nil)
}

func (h *Handler) register(c *gin.Context) {
	var input credentialsForm
	if err := c.ShouldBind(&input); err != nil {
		setFlash(c, flashDanger, "Email and password are required.")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	_, err := h.services.Register(c.Request.Context(), input.Email, input.Password)
	switch {
	case err == nil:
		setFlash(c, flashSuccess, "Registered successfully! Please login.")
		c.Redirect(http.StatusFound, "/login")
	case errors.Is(err, service.ErrEmailInvalid):
		setFlash(c, flashDanger, "Invalid email format!")
		c.Redirect(http.StatusFound, "/register")
	case errors.Is(err, service.ErrPasswordWeak):
		setFlash(c, flashDanger, "Password must be at least 6 characters long and contain letters and numbers.")
		c.Redirect(http.StatusFound, "/register")
	case errors.Is(err, service.ErrEmailTaken):
		setFlash(c, flashDanger, "Email already exists")
		c.Redirect(http.StatusFound, "/register")
	default:
		if h.log != nil {
			h.log.Errorw("register_failed", "err", err)
		}
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

func (h *Handler) loginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", nil)
}

func (h *Handler) login(c *gin.Context) {
	var input credentialsForm
	if err := c.ShouldBind(&input); err != nil {
		setFlash(c, flashDanger, "Invalid credentials")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := h.services.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			if h.log != nil {
				h.log.Errorw("login_failed", "err", err)
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		h.metrics.ObserveLogin("failure")
		setFlash(c, flashDanger, "Invalid credentials")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	token, err := h.services.IssueToken(user.ID)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("issue_token_failed", "err", err, "user_id", user.ID)
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(c, token)
	h.metrics.ObserveLogin("success")
	if h.log != nil {
		h.log.Infow("login_ok", "user_id", user.ID)
	}
	setFlash(c, flashSuccess, "Logged in successfully!")
	c.Redirect(http.StatusFound, "/predict")
}

func (h *Handler) logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	setFlash(c, flashInfo, "You have been logged out.")
	c.Redirect(http.StatusFound, "/login")
}

// setSessionCookie stores the session token in an HttpOnly SameSite=Lax
// cookie whose lifetime matches the token TTL.
func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	maxAge := viper.GetInt("auth.token_ttl_minutes") * 60
	if maxAge <= 0 {
		maxAge = 3600
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, maxAge, "/", "", false, true)
}
