package handlers

import (
	"io"
	"net/http"
	"strings"

	"dispatch/models"
	"dispatch/services"
	"dispatch/utils"

	"github.com/gin-gonic/gin"
)

// UploadVehicleImageHandler stores a vehicle photo
// @Summary Upload vehicle image
// @Description Upload a photo as multipart field "file" or as JSON {"image": "data:image/...;base64,..."}
// @Tags Upload
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param file formData file false "Image file"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/upload/vehicle-image [post]
func UploadVehicleImageHandler(images *services.ImageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			fileURL string
			err     error
		)
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			fh, ferr := c.FormFile("file")
			if ferr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required", "details": ferr.Error()})
				return
			}
			if fh.Size > maxImageSize {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Image is too large"})
				return
			}
			f, ferr := fh.Open()
			if ferr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image", "details": ferr.Error()})
				return
			}
			defer f.Close()
			data, ferr := io.ReadAll(io.LimitReader(f, maxImageSize))
			if ferr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image", "details": ferr.Error()})
				return
			}
			fileURL, err = images.UploadVehicleImage(c.Request.Context(), data, uploadedMimeType(fh))
		} else {
			var body struct {
				Image string `json:"image" binding:"required"`
			}
			if berr := c.ShouldBindJSON(&body); berr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": berr.Error()})
				return
			}
			fileURL, err = images.UploadDataURL(c.Request.Context(), body.Image)
		}
		if err != nil {
			respondError(c, err, "Failed to upload image")
			return
		}
		c.JSON(http.StatusOK, models.UploadResponse{FileURL: fileURL, ViewURL: utils.ImageViewURL(fileURL)})
	}
}
