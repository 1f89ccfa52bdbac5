package models

import "time"

// ErrorResponse is used in @Failure for every endpoint
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid input"`
	Details string `json:"details,omitempty" example:""`
}

// SuccessResponse is used in @Success for generic success
type SuccessResponse struct {
	Message string      `json:"message" example:"Success"`
	Data    interface{} `json:"data,omitempty"`
}

// LoginRequest is used in @Param for login body
type LoginRequest struct {
	UserID   string `json:"userId" binding:"required" example:"ramesh"`
	Password string `json:"password" binding:"required" example:"password"`
	IP       string `json:"ip" example:"192.168.1.1"`
}

// LoginResponse is used in @Success for login
type LoginResponse struct {
	Message      string    `json:"message" example:"User successfully logged in"`
	AccessToken  string    `json:"access_token" example:"eyJhbGc..."`
	RefreshToken string    `json:"refresh_token" example:"eyJhbGc..."`
	Role         string    `json:"role" example:"Admin"`
	User         LoginUser `json:"user"`
}

// LoginUser is the user object inside LoginResponse
type LoginUser struct {
	UserID   string `json:"userId" example:"ramesh"`
	UserName string `json:"userName" example:"Ramesh"`
	Role     string `json:"role" example:"Admin"`
}

// RefreshRequest is used in @Param for refresh-token body
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse is used in @Success for refresh-token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

// ValidateSessionResponse is used in @Success for validate session (swagger)
type ValidateSessionResponse struct {
	Valid    bool   `json:"valid" example:"true"`
	UserID   string `json:"userId,omitempty"`
	UserName string `json:"userName,omitempty"`
	Role     string `json:"role,omitempty"`
}

// ActiveDevice is one live session shown in the device list.
type ActiveDevice struct {
	SessionID string    `json:"session_id"`
	HostName  string    `json:"host_name"`
	IPAddress string    `json:"ip_address"`
	LoginTime time.Time `json:"login_time"`
}

// MaxDevicesResponse is returned with 409 when the device limit is reached.
type MaxDevicesResponse struct {
	Error          string         `json:"error" example:"Maximum device limit reached"`
	Message        string         `json:"message"`
	MaxDevices     int            `json:"max_devices" example:"3"`
	CurrentDevices int            `json:"current_devices" example:"3"`
	ActiveDevices  []ActiveDevice `json:"active_devices"`
	RequiresLogout bool           `json:"requires_logout" example:"true"`
}

// UploadResponse is used in @Success for image upload
type UploadResponse struct {
	FileURL string `json:"fileUrl"`
	ViewURL string `json:"viewUrl"`
}

// ActivityLogPage is used in @Success for the activity log listing
type ActivityLogPage struct {
	Logs     []ActivityLogGorm `json:"logs"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}
