package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"dispatch/models"
	"dispatch/repository"
	"dispatch/services"

	"github.com/gin-gonic/gin"
)

// maxImageSize bounds a vehicle photo sent as multipart.
const maxImageSize = 10 << 20

// stageQueueHandler serves the pending/history split of one stage.
func stageQueueHandler(svc *services.DispatchService, stage repository.Stage) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := bindFilter(c)
		if !ok {
			return
		}
		queue, err := svc.Queue(c.Request.Context(), stage, filter)
		if err != nil {
			respondError(c, err, "Failed to fetch "+strings.ReplaceAll(string(stage), "_", " ")+" queue")
			return
		}
		c.JSON(http.StatusOK, queue)
	}
}

// GetLoadingPointHandler lists the loading point queue
// @Summary Loading point queue
// @Description Pending (planned, not reached) and history (reached) indents
// @Tags Loading Point
// @Produce json
// @Security BearerAuth
// @Param plantName query string false "Plant name contains"
// @Param partyName query string false "Party name contains"
// @Param vehicleNo query string false "Vehicle number contains"
// @Param indentNo query string false "Indent number contains"
// @Success 200 {object} models.StageQueue
// @Failure 500 {object} models.ErrorResponse
// @Router /api/loading-point [get]
func GetLoadingPointHandler(svc *services.DispatchService) gin.HandlerFunc {
	return stageQueueHandler(svc, repository.StageLoadingPoint)
}

// VehicleReachedHandler marks a vehicle as arrived
// @Summary Mark vehicle reached
// @Description Stamp the loading point actual time of a pending indent
// @Tags Loading Point
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param row path int true "Sheet row index"
// @Param request body models.ReachedRequest false "Vehicle reached (default Yes)"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/loading-point/{row}/reached [post]
func VehicleReachedHandler(svc *services.DispatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, ok := rowParam(c)
		if !ok {
			return
		}
		var req models.ReachedRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
				return
			}
		}
		if err := svc.MarkVehicleReached(c.Request.Context(), actorFrom(c), row, req.VehicleReached); err != nil {
			respondError(c, err, "Failed to mark vehicle reached")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Vehicle marked as reached"})
	}
}

// UpdateLoadingPointHandler edits an indent at the loading point
// @Summary Update loading point
// @Tags Loading Point
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param row path int true "Sheet row index"
// @Param request body models.LoadingPointForm true "Indent and vehicle reached"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/loading-point/{row} [put]
func UpdateLoadingPointHandler(svc *services.DispatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, ok := rowParam(c)
		if !ok {
			return
		}
		var form models.LoadingPointForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		if err := svc.EditLoadingPoint(c.Request.Context(), actorFrom(c), row, form); err != nil {
			respondError(c, err, "Failed to update loading point")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Loading point updated successfully"})
	}
}

// GetLoadingCompleteHandler lists the loading complete queue
// @Summary Loading complete queue
// @Tags Loading Complete
// @Produce json
// @Security BearerAuth
// @Param plantName query string false "Plant name contains"
// @Param partyName query string false "Party name contains"
// @Param vehicleNo query string false "Vehicle number contains"
// @Param indentNo query string false "Indent number contains"
// @Success 200 {object} models.StageQueue
// @Failure 500 {object} models.ErrorResponse
// @Router /api/loading-complete [get]
func GetLoadingCompleteHandler(svc *services.DispatchService) gin.HandlerFunc {
	return stageQueueHandler(svc, repository.StageLoadingComplete)
}

// bindLoadingForm reads the loading form from JSON or multipart. A multipart
// request may attach the vehicle photo as the vehicleImage file.
func bindLoadingForm(c *gin.Context) (models.LoadingCompleteForm, error) {
	var form models.LoadingCompleteForm
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBindJSON(&form); err != nil {
			return form, err
		}
		return form, nil
	}

	if err := c.ShouldBind(&form); err != nil {
		return form, err
	}
	fh, err := c.FormFile("vehicleImage")
	if err == http.ErrMissingFile {
		return form, nil
	}
	if err != nil {
		return form, err
	}
	if fh.Size > maxImageSize {
		return form, fmt.Errorf("image exceeds %d MB", maxImageSize>>20)
	}
	f, err := fh.Open()
	if err != nil {
		return form, err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxImageSize))
	if err != nil {
		return form, err
	}
	form.ImageBytes = data
	form.ImageMimeType = uploadedMimeType(fh)
	form.VehicleImage = ""
	return form, nil
}

// CompleteLoadingHandler completes loading of an indent
// @Summary Complete loading
// @Description Stamp the loading complete time and write the loading details. The vehicle photo may be a multipart file or a data URL.
// @Tags Loading Complete
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param row path int true "Sheet row index"
// @Param request body models.LoadingCompleteForm true "Loading details"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/loading-complete/{row} [post]
func CompleteLoadingHandler(svc *services.DispatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, ok := rowParam(c)
		if !ok {
			return
		}
		form, err := bindLoadingForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		if err := svc.CompleteLoading(c.Request.Context(), actorFrom(c), row, form); err != nil {
			respondError(c, err, "Failed to complete loading")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Loading completed successfully"})
	}
}

// UpdateLoadingHandler edits the loading details
// @Summary Update loading details
// @Tags Loading Complete
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param row path int true "Sheet row index"
// @Param request body models.LoadingCompleteForm true "Loading details"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/loading-complete/{row} [put]
func UpdateLoadingHandler(svc *services.DispatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, ok := rowParam(c)
		if !ok {
			return
		}
		form, err := bindLoadingForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		if err := svc.EditLoading(c.Request.Context(), actorFrom(c), row, form); err != nil {
			respondError(c, err, "Failed to update loading details")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Loading details updated successfully"})
	}
}
