// Package authtoken issues and inspects the bearer credentials exchanged
// between the partner client and the backend.
//
// The development backend signs tokens with HS256. The client never holds the
// signing key: it only reads the expiry claim, without verification, so it can
// drop a stale session on start-up.
package authtoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrSecretIsRequired = errors.New("signing secret is required")

// Claims are the claims carried by a partner token.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// RoleDeliveryPartner is the only role the backend issues tokens for.
const RoleDeliveryPartner = "delivery_partner"

// Issue signs a token for the partner and returns it together with its expiry.
func Issue(secret []byte, userID, email string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	if len(secret) == 0 {
		return "", time.Time{}, ErrSecretIsRequired
	}

	expiresAt := now.Add(ttl).Truncate(time.Second)
	claims := Claims{
		Email: email,
		Role:  RoleDeliveryPartner,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify checks the signature and expiry of a token issued by Issue.
func Verify(secret []byte, token string) (*Claims, error) {
	if len(secret) == 0 {
		return nil, ErrSecretIsRequired
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// ParseExpiry reads the exp claim without verifying the signature.
// Opaque tokens and tokens without exp report false.
func ParseExpiry(token string) (time.Time, bool) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
