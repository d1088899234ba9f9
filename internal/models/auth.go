package models

import "github.com/golang-jwt/jwt/v5"

// AdminClaims identify an authenticated dashboard administrator.
type AdminClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
