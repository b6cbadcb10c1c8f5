package rest

import (
	"net/http"
	"regexp"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// vercelOrigin matches preview/production deployments of the SPA.
var vercelOrigin = regexp.MustCompile(`^https://.*\.vercel\.app$`)

func (s *Server) corsConfig() cors.Config {
	allowed := make(map[string]struct{}, len(s.allowedOrigins))
	for _, o := range s.allowedOrigins {
		allowed[o] = struct{}{}
	}

	cfg := cors.DefaultConfig()
	cfg.AllowOriginFunc = func(origin string) bool {
		if _, ok := allowed[origin]; ok {
			return true
		}
		return vercelOrigin.MatchString(origin)
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	cfg.AllowCredentials = true
	return cfg
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), metricsMiddleware(), bodyLimit(), cors.New(s.corsConfig()))

	r.GET("/health", func(c *gin.Context) {
		respond(c, http.StatusOK, "Server running", nil)
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api", s.rateLimitMiddleware())

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", s.handleSignup)
	authGroup.POST("/request-otp", s.handleRequestOTP)
	authGroup.POST("/verify-otp", s.handleVerifyOTP)
	authGroup.POST("/login", s.handleLogin)

	noteGroup := api.Group("/notes", s.authMiddleware())
	noteGroup.POST("", s.handleCreateNote)
	noteGroup.GET("", s.handleListNotes)
	noteGroup.GET("/:id", s.handleGetNote)
	noteGroup.DELETE("/:id", s.handleDeleteNote)

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "Route not found")
	})

	return r
}
