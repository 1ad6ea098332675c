package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// dashboard renders the user's submission history, most recent first.
func (h *Handler) dashboard(c *gin.Context) {
	userID := currentUserID(c)
	history, err := h.services.ListByUser(c.Request.Context(), userID)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("dashboard_failed", "err", err, "user_id", userID)
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	h.render(c, http.StatusOK, "dashboard.html", gin.H{"History": history})
}
