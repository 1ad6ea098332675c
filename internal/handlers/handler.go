package handlers

import (
	"net/http"

	"riskscreen/internal/logger"
	"riskscreen/internal/metrics"
	"riskscreen/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

const defaultTemplatesGlob = "web/templates/*.html"

// Handler wires HTTP layer to services, logging and metrics.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, m *metrics.Metrics) *Handler {
	return &Handler{services: services, log: log, metrics: m}
}

// InitRoutes builds and returns the Gin router with templates loaded and all
// routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	glob := viper.GetString("templates.glob")
	if glob == "" {
		glob = defaultTemplatesGlob
	}
	router.LoadHTMLGlob(glob)

	if h.metrics != nil {
		router.Use(h.metrics.RequestMiddleware())
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	h.RegisterRoutes(router)
	return router
}

// RegisterRoutes attaches page routes and the no-cache middleware to an
// existing engine. Split from InitRoutes so tests can supply their own
// template set.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(noCacheHeaders())

	// Health endpoint
	router.GET("/health", h.health)

	// Public pages
	router.GET("/", h.landing)
	router.GET("/home", h.home)
	router.GET("/register", h.registerForm)
	router.POST("/register", h.register)
	router.GET("/login", h.loginForm)
	router.POST("/login", h.login)

	// Pages requiring a session
	authed := router.Group("/", h.requireSession)
	{
		authed.GET("/logout", h.logout)
		authed.GET("/predict", h.predictPage)
		authed.POST("/predict", h.predict)
		authed.GET("/dashboard", h.dashboard)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// landing renders the public landing page.
func (h *Handler) landing(c *gin.Context) {
	h.render(c, http.StatusOK, "landing.html", nil)
}

// home redirects to the login page.
func (h *Handler) home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
}

// render shows a template, attaching any pending flash message.
func (h *Handler) render(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if f := takeFlash(c); f != nil {
		data["Flash"] = f
	}
	c.HTML(code, name, data)
}
