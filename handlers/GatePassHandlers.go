package handlers

import (
	"net/http"

	"dispatch/models"
	"dispatch/repository"
	"dispatch/services"

	"github.com/gin-gonic/gin"
)

// GetGatePassHandler lists the gate pass queue
// @Summary Gate pass queue
// @Tags Gate Pass
// @Produce json
// @Security BearerAuth
// @Param plantName query string false "Plant name contains"
// @Param partyName query string false "Party name contains"
// @Param vehicleNo query string false "Vehicle number contains"
// @Param indentNo query string false "Indent number contains"
// @Success 200 {object} models.StageQueue
// @Failure 500 {object} models.ErrorResponse
// @Router /api/gate-pass [get]
func GetGatePassHandler(svc *services.DispatchService) gin.HandlerFunc {
	return stageQueueHandler(svc, repository.StageGatePass)
}

// IssueGatePassHandler issues a gate pass
// @Summary Issue gate pass
// @Description Stamp the gate pass time and write the gate pass columns. Net weight is loading weight minus tare weight.
// @Tags Gate Pass
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param row path int true "Sheet row index"
// @Param request body models.GatePassForm true "Gate pass"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/gate-pass/{row} [post]
func IssueGatePassHandler(svc *services.DispatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, ok := rowParam(c)
		if !ok {
			return
		}
		var form models.GatePassForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		if err := svc.IssueGatePass(c.Request.Context(), actorFrom(c), row, form); err != nil {
			respondError(c, err, "Failed to issue gate pass")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Gate pass issued successfully"})
	}
}

// UpdateGatePassHandler edits a gate pass
// @Summary Update gate pass
// @Tags Gate Pass
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param row path int true "Sheet row index"
// @Param request body models.GatePassForm true "Gate pass"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/gate-pass/{row} [put]
func UpdateGatePassHandler(svc *services.DispatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, ok := rowParam(c)
		if !ok {
			return
		}
		var form models.GatePassForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		if err := svc.EditGatePass(c.Request.Context(), actorFrom(c), row, form); err != nil {
			respondError(c, err, "Failed to update gate pass")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Gate pass updated successfully"})
	}
}
