package handlers

import (
	"net/http"

	"studenthub/internal/logger"
	"studenthub/internal/models"
	"studenthub/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services   *service.Service
	log        *logger.Logger
	corsOrigin string
}

// NewHandler constructs a new HTTP handler with dependencies.
// corsOrigin is the SPA origin allowed to call the API; empty disables CORS headers.
func NewHandler(services *service.Service, log *logger.Logger, corsOrigin string) *Handler {
	return &Handler{services: services, log: log, corsOrigin: corsOrigin}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if h.corsOrigin != "" {
		router.Use(h.cors())
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Banner and health endpoints
	router.GET("/", h.root)
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerStudentRoutes(router)

	// Live roster feed for admin dashboards — same port
	router.GET("/ws/events", h.authenticate, h.requireRole(models.RoleAdmin), h.wsEvents)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", h.signUp)
		auth.POST("/login", h.login)
		auth.POST("/admin-signup", h.adminSignUp)
	}
}

func (h *Handler) registerStudentRoutes(r *gin.Engine) {
	// authenticate runs first on every student route; requireRole assumes
	// it already populated the request context.
	students := r.Group("/api/students", h.authenticate)
	{
		students.GET("/profile", h.myProfile)
		students.GET("", h.requireRole(models.RoleAdmin), h.listStudents)
		students.GET("/:id", h.requireRole(models.RoleAdmin), h.getStudent)
		students.POST("", h.requireRole(models.RoleAdmin), h.createStudent)
		students.PUT("/:id", h.updateStudent) // admin or the student themselves
		students.DELETE("/:id", h.requireRole(models.RoleAdmin), h.deleteStudent)
	}
}

// cors allows the configured frontend origin to call the API from a browser.
func (h *Handler) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", h.corsOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      API banner
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "StudentHub Backend API"})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
