package handlers

import (
	"net/http"
	"strconv"

	"dispatch/models"
	"dispatch/services"
	"dispatch/storage"

	"github.com/gin-gonic/gin"
)

// GetActivityLogs pages the audit log
// @Summary Activity logs
// @Description Newest first. Empty when no database is configured.
// @Tags Activity
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 50, max 200)"
// @Param event_context query string false "indent, loading_point, loading_complete, gate_pass, user or auth"
// @Param user_name query string false "User name"
// @Success 200 {object} models.ActivityLogPage
// @Failure 500 {object} models.ErrorResponse
// @Router /api/logs [get]
func GetActivityLogs(activity *services.ActivityRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
		q := storage.ActivityQuery{
			EventContext: c.Query("event_context"),
			UserName:     c.Query("user_name"),
			Page:         page,
			PageSize:     pageSize,
		}.Normalise()

		logs, total, err := activity.List(c.Request.Context(), q)
		if err != nil {
			respondError(c, err, "Failed to fetch activity logs")
			return
		}
		if logs == nil {
			logs = []models.ActivityLogGorm{}
		}
		c.JSON(http.StatusOK, models.ActivityLogPage{Logs: logs, Total: total, Page: q.Page, PageSize: q.PageSize})
	}
}
