package utils

import (
	"errors"
	"time"

	"rentme/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "rentme-api"

// GenerateVendorToken signs a vendor session token valid for ttl.
func GenerateVendorToken(secret, vendorID, email string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("JWT_SECRET not configured")
	}
	if vendorID == "" {
		return "", errors.New("vendor id is required")
	}

	now := time.Now()
	claims := models.VendorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   vendorID,
		},
		VendorID: vendorID,
		Email:    email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseVendorToken parses and validates a vendor session token.
func ParseVendorToken(secret, tokenStr string) (*models.VendorClaims, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET not configured")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.VendorClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.VendorClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.VendorID == "" {
		return nil, errors.New("token has no vendor_id claim")
	}
	return claims, nil
}
