package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims are the JWT claims attached to every authenticated request.
// They carry identity only; the buyer/seller role for a given transaction
// is derived from the transaction record itself.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}
