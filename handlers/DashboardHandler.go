package handlers

import (
	"net/http"

	"dispatch/services"

	"github.com/gin-gonic/gin"
)

// DashboardHandler returns the dashboard counters
// @Summary Dashboard stats
// @Description Totals and per-stage pending/completed counts over the dispatch sheet
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DashboardStats
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/dashboard [get]
func DashboardHandler(svc *services.DispatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.Stats(c.Request.Context())
		if err != nil {
			respondError(c, err, "Failed to fetch dashboard stats")
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// GetDropdownsHandler returns the form option lists
// @Summary Dropdown options
// @Description Plant names, office dispatchers, commodity types, munsi names and sub commodities
// @Tags Dropdowns
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DropdownOptions
// @Failure 500 {object} models.ErrorResponse
// @Router /api/dropdowns [get]
func GetDropdownsHandler(dd *services.DropdownService) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts, err := dd.Dropdowns(c.Request.Context())
		if err != nil {
			respondError(c, err, "Failed to fetch dropdown options")
			return
		}
		c.JSON(http.StatusOK, opts)
	}
}

// RefreshDropdownsHandler reloads the option lists
// @Summary Refresh dropdown options
// @Description Reload the Drop-Down sheet, bypassing the cache
// @Tags Dropdowns
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DropdownOptions
// @Failure 500 {object} models.ErrorResponse
// @Router /api/dropdowns/refresh [post]
func RefreshDropdownsHandler(dd *services.DropdownService) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts, err := dd.Refresh(c.Request.Context())
		if err != nil {
			respondError(c, err, "Failed to refresh dropdown options")
			return
		}
		c.JSON(http.StatusOK, opts)
	}
}
