package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dispatch/models"
	"dispatch/services"

	"github.com/gin-gonic/gin"
)

// LoginHandler handles user authentication
// @Summary Login user
// @Description Check the Login sheet and open a session. At most 3 devices may be logged in at once.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 409 {object} models.MaxDevicesResponse
// @Router /api/login [post]
func LoginHandler(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		actor := services.Actor{IP: strings.TrimSpace(req.IP), HostName: hostName(c)}
		if actor.IP == "" {
			actor.IP = c.ClientIP()
		}

		res, err := auth.Login(c.Request.Context(), req.UserID, req.Password, actor)
		var maxErr *services.MaxDevicesError
		switch {
		case errors.As(err, &maxErr):
			// No session is created and no device is logged out.
			c.JSON(http.StatusConflict, models.MaxDevicesResponse{
				Error:          "Maximum device limit reached",
				Message:        fmt.Sprintf("You have reached the maximum limit of %d active devices. Please logout from one device to continue.", services.MaxSessions),
				MaxDevices:     services.MaxSessions,
				CurrentDevices: len(maxErr.Devices),
				ActiveDevices:  maxErr.Devices,
				RequiresLogout: true,
			})
			return
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		case err != nil:
			respondError(c, err, "Login failed")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Login successful",
			"access_token":  res.AccessToken,
			"refresh_token": res.RefreshToken,
			"session_id":    res.SessionID,
			"role":          res.User.Role,
			"expires_in":    int(time.Until(res.ExpiresAt).Seconds()),
			"user": models.LoginUser{
				UserID:   res.User.UserID,
				UserName: res.User.UserName,
				Role:     res.User.Role,
			},
		})
	}
}

// RefreshTokenHandler issues a new access token
// @Summary Refresh access token
// @Description Exchange a refresh token for a new access token on the same session
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RefreshRequest true "Refresh token"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/refresh-token [post]
func RefreshTokenHandler(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token is required"})
			return
		}
		access, exp, err := auth.Refresh(c.Request.Context(), req.RefreshToken)
		if err != nil {
			respondError(c, err, "Invalid or expired refresh token")
			return
		}
		c.JSON(http.StatusOK, models.TokenResponse{AccessToken: access, ExpiresAt: exp.Unix()})
	}
}

// LogoutHandler closes a session
// @Summary Logout
// @Description Close the current session, or one of the caller's other sessions when session_id is given
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Param session_id query string false "Session to close"
// @Success 200 {object} models.SuccessResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/logout [post]
func LogoutHandler(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsFrom(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err := auth.Logout(c.Request.Context(), claims, c.Query("session_id"), actorFrom(c)); err != nil {
			respondError(c, err, "Logout failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}

// ActiveDevicesHandler lists the caller's sessions
// @Summary Active devices
// @Description List the live sessions of the logged in user
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ActiveDevice
// @Failure 401 {object} models.ErrorResponse
// @Router /api/active-devices [get]
func ActiveDevicesHandler(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsFrom(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		devices, err := auth.ActiveDevices(c.Request.Context(), claims.UserID)
		if err != nil {
			respondError(c, err, "Failed to get active devices")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"max_devices":     services.MaxSessions,
			"current_devices": len(devices),
			"active_devices":  devices,
		})
	}
}
