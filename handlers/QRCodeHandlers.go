package handlers

import (
	"fmt"
	"net/http"

	"dispatch/services"

	"github.com/gin-gonic/gin"
)

// GatePassQRHandler generates the gate pass QR image
// @Summary Gate pass QR code
// @Description JPEG QR code of the gate pass with indent, vehicle and weight labels
// @Tags Gate Pass
// @Produce image/jpeg
// @Security BearerAuth
// @Param row path int true "Sheet row index"
// @Success 200 {file} file "JPEG image"
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/gate-pass/{row}/qr [get]
func GatePassQRHandler(svc *services.DispatchService) gin.HandlerFunc {
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
		data, err := services.GatePassQRJPEG(indent)
		if err != nil {
			respondError(c, err, "QR code generation failed")
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("inline; filename=gate_pass_%s.jpg", indent.IndentNo))
		c.Data(http.StatusOK, "image/jpeg", data)
	}
}
