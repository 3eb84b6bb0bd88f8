package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// PrincipalKind identifies which trust domain a request comes from.
type PrincipalKind string

const (
	// PrincipalUser cookie+JWT end-user session
	PrincipalUser PrincipalKind = "user"
	// PrincipalAdmin cookie+JWT admin session
	PrincipalAdmin PrincipalKind = "admin"
	// PrincipalAPIKey static-key client on the v1 surface
	PrincipalAPIKey PrincipalKind = "apikey"
)

// Principal is the authenticated identity making a request. A nil *Principal
// means an anonymous requester.
type Principal struct {
	Kind PrincipalKind
	// UserID set only for PrincipalUser
	UserID primitive.ObjectID
}

// UserPrincipal build a principal for an authenticated end-user.
func UserPrincipal(userID primitive.ObjectID) *Principal {
	return &Principal{Kind: PrincipalUser, UserID: userID}
}

// AdminPrincipal build an admin principal.
func AdminPrincipal() *Principal {
	return &Principal{Kind: PrincipalAdmin}
}

// APIKeyPrincipal build an API-key principal.
func APIKeyPrincipal() *Principal {
	return &Principal{Kind: PrincipalAPIKey}
}
