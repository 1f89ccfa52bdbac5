package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// SessionGorm represents the session table with GORM tags
type SessionGorm struct {
	ID                    uint           `gorm:"primaryKey;column:id" json:"id"`
	UserID                string         `gorm:"column:user_id;index;not null" json:"user_id"`
	UserName              string         `gorm:"column:user_name;not null" json:"user_name"`
	Role                  string         `gorm:"column:role;not null" json:"role"`
	SessionID             string         `gorm:"column:session_id;uniqueIndex;not null" json:"session_id"`
	HostName              string         `gorm:"column:host_name;not null" json:"host_name"`
	IPAddress             string         `gorm:"column:ip_address;not null" json:"ip_address"`
	Timestamp             time.Time      `gorm:"column:timestp;not null" json:"timestp"`
	ExpiresAt             time.Time      `gorm:"column:expires_at;not null" json:"expires_at"`
	RefreshToken          string         `gorm:"column:refresh_token" json:"-"`
	RefreshTokenExpiresAt time.Time      `gorm:"column:refresh_token_expires_at;index" json:"-"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for SessionGorm
func (SessionGorm) TableName() string {
	return "session"
}

// ActivityLogGorm represents the activity_log table with GORM tags
type ActivityLogGorm struct {
	ID             uint           `gorm:"primaryKey;column:id" json:"id"`
	CreatedAt      time.Time      `gorm:"column:created_at;not null;index" json:"created_at"`
	UserName       string         `gorm:"column:user_name;not null" json:"user_name"`
	UserID         string         `gorm:"column:user_id" json:"user_id"`
	HostName       string         `gorm:"column:host_name;not null" json:"host_name"`
	EventContext   string         `gorm:"column:event_context;not null;index" json:"event_context"`
	IPAddress      string         `gorm:"column:ip_address;not null" json:"ip_address"`
	Description    string         `gorm:"column:description;not null" json:"description"`
	EventName      string         `gorm:"column:event_name;not null" json:"event_name"`
	SheetName      string         `gorm:"column:sheet_name" json:"sheet_name"`
	RowIndex       int            `gorm:"column:row_index" json:"row_index"`
	ChangedColumns pq.StringArray `gorm:"column:changed_columns;type:text[]" json:"changed_columns"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for ActivityLogGorm
func (ActivityLogGorm) TableName() string {
	return "activity_log"
}
