package models

import "github.com/golang-jwt/jwt/v5"

// CustomClaims extends the registered JWT claims with the fields the API
// needs to authorize a request without a user lookup. TokenType separates
// access tokens from refresh tokens so one can never stand in for the other.
type CustomClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Username  string `json:"username,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"token_type"`
}
