package handlers

type ProductResponse struct {
	Id          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	UserID      string  `json:"user_id,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AdminSetRequest struct {
	Email string `json:"email"`
}

type AdminCheckResult struct {
	IsAdmin bool `json:"is_admin"`
}

type UserInfo struct {
	UserID      string  `json:"user_id"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	IsAdmin     bool    `json:"is_admin"`
	AccessToken *string `json:"access_token"`
}

type UsersResult struct {
	Users []UserInfo `json:"users"`
}

type SessionUser struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type SessionResult struct {
	Authenticated bool         `json:"authenticated"`
	User          *SessionUser `json:"user"`
	AccessToken   string       `json:"access_token,omitempty"`
}
