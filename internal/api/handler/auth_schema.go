package handler

import "time"

// detailResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type detailResponse struct {
	Detail string `json:"detail"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// userResponse deliberately omits the password hash.
type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	RoleID    string    `json:"role_id"`
	Disabled  bool      `json:"disabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
