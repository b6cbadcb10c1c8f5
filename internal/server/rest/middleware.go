package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hwdelite/notesvc/internal/server/models"
)

// currentUserKey is the gin context key holding the authenticated user
// projection set by the bearer-token middleware.
const currentUserKey = "notesvc_current_user"

// CurrentUser is the minimal projection attached to authenticated requests.
type CurrentUser struct {
	ID           string
	Email        string
	Name         string
	SignupMethod string
}

// GetCurrentUser retrieves the authenticated user from the gin context.
// Returns nil if the request did not pass the bearer-token middleware.
func GetCurrentUser(c *gin.Context) *CurrentUser {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*CurrentUser)
	if !ok {
		return nil
	}
	return user
}

// authMiddleware guards the note routes. Missing header or token is 401; a
// bad signature or expired token is 403; a valid token whose user no longer
// exists is 401, so tokens of deleted accounts stop working.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		var token string
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = parts[1]
		}
		if token == "" {
			respondError(c, http.StatusUnauthorized, "Access token required")
			return
		}

		claims, err := s.parseToken(token)
		if err != nil {
			respondError(c, http.StatusForbidden, "Invalid or expired token")
			return
		}

		user, err := s.auth.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "User not found")
			return
		}

		c.Set(currentUserKey, &CurrentUser{
			ID:           user.ID,
			Email:        user.Email,
			Name:         user.Name,
			SignupMethod: signupMethodOrDefault(user),
		})

		c.Next()
	}
}

func signupMethodOrDefault(u *models.User) string {
	if u.SignupMethod == "" {
		return models.SignupMethodEmail
	}
	return u.SignupMethod
}

// requestLogger logs one line per request with the route, status, and
// latency.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

// maxBodyBytes caps JSON request bodies at 10 MiB.
const maxBodyBytes = 10 << 20

func bodyLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		c.Next()
	}
}
