package models

// User mirrors the identity provider's subject. Rows are auto-provisioned
// on the first authenticated request, never via a local registration flow.
type User struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}
