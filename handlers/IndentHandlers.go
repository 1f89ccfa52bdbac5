package handlers

import (
	"net/http"

	"dispatch/models"
	"dispatch/services"

	"github.com/gin-gonic/gin"
)

// GetIndentsHandler lists indents
// @Summary List indents
// @Tags Indents
// @Produce json
// @Security BearerAuth
// @Param plantName query string false "Plant name contains"
// @Param officeDispatcher query string false "Office dispatcher contains"
// @Param partyName query string false "Party name contains"
// @Param vehicleNo query string false "Vehicle number contains"
// @Param commodityType query string false "Commodity type contains"
// @Param indentNo query string false "Indent number contains"
// @Success 200 {array} models.Indent
// @Failure 500 {object} models.ErrorResponse
// @Router /api/indents [get]
func GetIndentsHandler(svc *services.DispatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := bindFilter(c)
		if !ok {
			return
		}
		indents, err := svc.ListIndents(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err, "Failed to fetch indents")
			return
		}
		c.JSON(http.StatusOK, indents)
	}
}

// CreateIndentHandler creates an indent
// @Summary Create indent
// @Description Append an indent with the next IN-nnn number and the current timestamp
// @Tags Indents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.IndentForm true "Indent"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/indents [post]
func CreateIndentHandler(svc *services.DispatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form models.IndentForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		indentNo, err := svc.CreateIndent(c.Request.Context(), actorFrom(c), form)
		if err != nil {
			respondError(c, err, "Failed to create indent")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Indent created successfully", "indentNo": indentNo})
	}
}

// UpdateIndentHandler edits an indent
// @Summary Update indent
// @Description Rewrite the indent columns; the indent number and creation time are kept
// @Tags Indents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param row path int true "Sheet row index"
// @Param request body models.IndentForm true "Indent"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/indents/{row} [put]
func UpdateIndentHandler(svc *services.DispatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, ok := rowParam(c)
		if !ok {
			return
		}
		var form models.IndentForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		if err := svc.UpdateIndent(c.Request.Context(), actorFrom(c), row, form); err != nil {
			respondError(c, err, "Failed to update indent")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Indent updated successfully"})
	}
}

// DeleteIndentHandler deletes an indent
// @Summary Delete indent
// @Tags Indents
// @Produce json
// @Security BearerAuth
// @Param row path int true "Sheet row index"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/indents/{row} [delete]
func DeleteIndentHandler(svc *services.DispatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, ok := rowParam(c)
		if !ok {
			return
		}
		if err := svc.DeleteIndent(c.Request.Context(), actorFrom(c), row); err != nil {
			respondError(c, err, "Failed to delete indent")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Indent deleted successfully"})
	}
}
