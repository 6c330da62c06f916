package models

import "github.com/golang-jwt/jwt/v5"

// VendorClaims are the JWT claims a vendor session carries.
type VendorClaims struct {
	jwt.RegisteredClaims
	VendorID string `json:"vendor_id"`
	Email    string `json:"email"`
}
