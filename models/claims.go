package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are the claims carried by a MoneyMap session token. The user
// ID lives in the registered Subject claim.
type SessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}
