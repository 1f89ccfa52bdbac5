package handlers

import (
	"net/http"

	"dispatch/services"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler downloads a list as an Excel workbook
// @Summary Export to Excel
// @Description Export the indent list or one bucket of a stage queue. The list filters apply.
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param stage path string true "indents, loading_point, loading_complete or gate_pass"
// @Param bucket query string false "pending (default) or history"
// @Param plantName query string false "Plant name contains"
// @Param partyName query string false "Party name contains"
// @Success 200 {file} file "xlsx file"
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/export/{stage} [get]
func ExportHandler(svc *services.DispatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := bindFilter(c)
		if !ok {
			return
		}
		data, fileName, err := svc.Export(c.Request.Context(), c.Param("stage"), c.Query("bucket"), filter)
		if err != nil {
			respondError(c, err, "Failed to export")
			return
		}
		c.Header("Content-Disposition", "attachment;filename="+fileName)
		c.Data(http.StatusOK, xlsxContentType, data)
	}
}
