package handlers

import (
	"fmt"
	"net/http"
	"time"

	"dispatch/services"

	"github.com/gin-gonic/gin"
)

// GatePassPDFHandler renders the printable gate pass
// @Summary Gate pass PDF
// @Tags Gate Pass
// @Produce application/pdf
// @Security BearerAuth
// @Param row path int true "Sheet row index"
// @Success 200 {file} file "PDF file"
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/gate-pass/{row}/pdf [get]
func GatePassPDFHandler(svc *services.DispatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, ok := rowParam(c)
		if !ok {
			return
		}
		indent, err := svc.GatePass(c.Request.Context(), row)
		if err != nil {
			respondError(c, err, "Gate pass not available")
			return
		}
		data, err := services.GatePassPDF(indent, time.Now())
		if err != nil {
			respondError(c, err, "Failed to generate PDF")
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("inline; filename=gate_pass_%s.pdf", indent.IndentNo))
		c.Data(http.StatusOK, "application/pdf", data)
	}
}
