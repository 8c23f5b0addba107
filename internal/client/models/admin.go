package models

// AdminUser is the display object persisted after a successful admin login.
type AdminUser struct {
	Username string `json:"username"`
	Image    string `json:"image"`
}
