package models

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// User is one Login sheet row. Password never leaves the backend.
type User struct {
	ID       int    `json:"id" example:"2"`
	RowIndex int    `json:"rowIndex" example:"2"`
	SerialNo string `json:"serialNo" example:"SN-001"`
	UserName string `json:"userName" example:"Ramesh"`
	UserID   string `json:"userId" example:"ramesh"`
	Password string `json:"-"`
	Role     string `json:"role" example:"Admin"`
}

// UserForm is the create/edit body of a user. An empty password on edit
// keeps the stored one.
type UserForm struct {
	UserName string `json:"userName" example:"Ramesh"`
	UserID   string `json:"userId" example:"ramesh"`
	Password string `json:"password" example:"secret"`
	Role     string `json:"role" example:"User"`
}
