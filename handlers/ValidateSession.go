package handlers

import (
	"net/http"
	"strings"

	"dispatch/models"
	"dispatch/services"
	"dispatch/utils"

	"github.com/gin-gonic/gin"
)

// ValidateSession validates user session
// @Summary Validate session
// @Description Validate the bearer token and its session
// @Tags Authentication
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} models.ValidateSessionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/validate-session [post]
func ValidateSession(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing Authorization header"})
			return
		}
		claims, err := auth.Authenticate(c.Request.Context(), utils.BearerToken(authHeader))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, models.ValidateSessionResponse{
			Valid:    true,
			UserID:   claims.UserID,
			UserName: claims.UserName,
			Role:     claims.Role,
		})
	}
}

// AuthRequired rejects requests without a valid access token bound to a
// live session, and stores the claims on the context.
func AuthRequired(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			c.Abort()
			return
		}
		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session", "details": err.Error()})
			c.Abort()
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// AdminOnly lets only the admin role through. Must run after AuthRequired.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsFrom(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		if !services.IsAdmin(claims.Role) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
