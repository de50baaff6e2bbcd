package auth

import "eventhub/internal/users"

// represents the authentication response
type AuthResponse struct {
	User        users.Profile `json:"user"`
	AccessToken string        `json:"access_token"`
	ExpiresIn   int64         `json:"expires_in"`
}
