package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kcaldiary/kcaldiary/internal/common"
)

// Claims carries the standard registered claims plus the authenticated
// member's id.
type Claims struct {
	jwt.RegisteredClaims
	MemberID string
}

func GenerateToken(memberID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		MemberID: memberID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GetMemberIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.MemberID, nil
}
