package jwt

import (
	jwtLib "github.com/golang-jwt/jwt/v5"
)

// UserClaims is the token payload for an end-user session.
// Subject carries the user id.
type UserClaims struct {
	jwtLib.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// AdminClaims is the token payload for an admin session.
// There is no subject; the claim itself is the grant.
type AdminClaims struct {
	jwtLib.RegisteredClaims
	Admin bool `json:"admin"`
}
