package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"dispatch/models"
	"dispatch/services"
	"dispatch/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const claimsKey = "claims"

// claimsFrom returns the token claims stored by AuthRequired.
func claimsFrom(c *gin.Context) *utils.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*utils.Claims)
	return claims
}

// actorFrom identifies the caller for the activity log.
func actorFrom(c *gin.Context) services.Actor {
	actor := services.Actor{IP: c.ClientIP(), HostName: hostName(c)}
	if claims := claimsFrom(c); claims != nil {
		actor.UserID = claims.UserID
		actor.UserName = claims.UserName
	}
	return actor
}

func hostName(c *gin.Context) string {
	if h := strings.TrimSpace(c.GetHeader("X-Host-Name")); h != "" {
		return h
	}
	return c.Request.UserAgent()
}

// rowParam parses the 1-based :row path parameter.
func rowParam(c *gin.Context) (int, bool) {
	row, err := strconv.Atoi(c.Param("row"))
	if err != nil || row < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid row index"})
		return 0, false
	}
	return row, true
}

func bindFilter(c *gin.Context) (models.IndentFilter, bool) {
	var filter models.IndentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter", "details": err.Error()})
		return filter, false
	}
	return filter, true
}

// respondError maps service errors to a status and the error body.
func respondError(c *gin.Context, err error, msg string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrNotPending), errors.Is(err, services.ErrNotCompleted):
		status = http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrUnauthorized):
		status = http.StatusUnauthorized
	}
	if status == http.StatusInternalServerError {
		log.WithError(err).Errorf("%s %s: %s", c.Request.Method, c.FullPath(), msg)
	}
	c.JSON(status, gin.H{"error": msg, "details": err.Error()})
}

// uploadedMimeType returns the declared type of an uploaded part, or "" when
// the client sent a generic one so the content is sniffed instead.
func uploadedMimeType(fh *multipart.FileHeader) string {
	ct := strings.TrimSpace(fh.Header.Get("Content-Type"))
	if ct == "application/octet-stream" {
		return ""
	}
	return ct
}
