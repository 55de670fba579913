// Package auth issues and verifies the signed session tokens that carry an
// authenticated identity between requests. Tokens are stateless: nothing is
// persisted server-side, and the embedded role is a snapshot taken at login.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/recipekeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated subject attached to a request after its
// token has been verified.
type Identity struct {
	AccountID int64
	Role      string
}

// Claims binds the account id and role snapshot into the token.
type Claims struct {
	jwt.RegisteredClaims
	AccountID int64  `json:"uid"`
	Role      string `json:"role"`
}

// GenerateToken produces an HS256-signed token for the given account and
// role. A non-positive validity yields a token without an expiry claim,
// matching the default configuration.
func GenerateToken(accountID int64, role string, secretKey []byte, validity time.Duration) (string, error) {
	claims := Claims{
		AccountID: accountID,
		Role:      role,
	}
	if validity > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(validity))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetIdentityFromToken verifies the signature and (if present) the expiry
// claim, and returns the identity the token asserts. A malformed token, a bad
// signature or an unexpected signing method all yield common.ErrInvalidToken;
// an expired token yields common.ErrTokenExpired.
func GetIdentityFromToken(tokenString string, secretKey []byte) (*Identity, error) {
	claims := &Claims{}

	// Strict decoding rejects non-canonical base64, so a token differing
	// only in the unused trailing bits of a segment never verifies.
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return &Identity{AccountID: claims.AccountID, Role: claims.Role}, nil
}
