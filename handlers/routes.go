package handlers

import (
	"dispatch/services"

	"github.com/gin-gonic/gin"
)

// API bundles the services the HTTP layer is wired to.
type API struct {
	Auth      *services.AuthService
	Dispatch  *services.DispatchService
	Users     *services.UserService
	Dropdowns *services.DropdownService
	Images    *services.ImageService
	Activity  *services.ActivityRecorder
}

// RegisterRoutes mounts every /api route. Any logged in user may read the
// dashboard and the dropdowns; everything else is admin only.
func RegisterRoutes(r *gin.Engine, api API) {
	r.POST("/api/login", LoginHandler(api.Auth))
	r.POST("/api/refresh-token", RefreshTokenHandler(api.Auth))
	r.POST("/api/validate-session", ValidateSession(api.Auth))

	authed := r.Group("/api", AuthRequired(api.Auth))
	{
		authed.POST("/logout", LogoutHandler(api.Auth))
		authed.GET("/active-devices", ActiveDevicesHandler(api.Auth))
		authed.GET("/dashboard", DashboardHandler(api.Dispatch))
		authed.GET("/dropdowns", GetDropdownsHandler(api.Dropdowns))
	}

	admin := r.Group("/api", AuthRequired(api.Auth), AdminOnly())
	{
		admin.POST("/dropdowns/refresh", RefreshDropdownsHandler(api.Dropdowns))

		admin.GET("/indents", GetIndentsHandler(api.Dispatch))
		admin.POST("/indents", CreateIndentHandler(api.Dispatch))
		admin.PUT("/indents/:row", UpdateIndentHandler(api.Dispatch))
		admin.DELETE("/indents/:row", DeleteIndentHandler(api.Dispatch))

		admin.GET("/loading-point", GetLoadingPointHandler(api.Dispatch))
		admin.POST("/loading-point/:row/reached", VehicleReachedHandler(api.Dispatch))
		admin.PUT("/loading-point/:row", UpdateLoadingPointHandler(api.Dispatch))

		admin.GET("/loading-complete", GetLoadingCompleteHandler(api.Dispatch))
		admin.POST("/loading-complete/:row", CompleteLoadingHandler(api.Dispatch))
		admin.PUT("/loading-complete/:row", UpdateLoadingHandler(api.Dispatch))

		admin.GET("/gate-pass", GetGatePassHandler(api.Dispatch))
		admin.POST("/gate-pass/:row", IssueGatePassHandler(api.Dispatch))
		admin.PUT("/gate-pass/:row", UpdateGatePassHandler(api.Dispatch))
		admin.GET("/gate-pass/:row/pdf", GatePassPDFHandler(api.Dispatch))
		admin.GET("/gate-pass/:row/qr", GatePassQRHandler(api.Dispatch))

		admin.POST("/upload/vehicle-image", UploadVehicleImageHandler(api.Images))
		admin.GET("/export/:stage", ExportHandler(api.Dispatch))

		admin.GET("/users", GetUsersHandler(api.Users))
		admin.POST("/users", CreateUserHandler(api.Users))
		admin.PUT("/users/:row", UpdateUserHandler(api.Users))
		admin.DELETE("/users/:row", DeleteUserHandler(api.Users))

		admin.GET("/logs", GetActivityLogs(api.Activity))
	}
}
