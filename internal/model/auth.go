package model

import "github.com/golang-jwt/jwt/v5"

// AnalystClaims are JWT claims for compliance-analyst authentication
type AnalystClaims struct {
	AnalystID string `json:"analystId"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for analyst login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token     string `json:"token"`
	AnalystID string `json:"analystId"`
}
