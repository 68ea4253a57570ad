package apitest

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/parishportal/parishportal/internal/common"
)

// claims carries the registered claims plus the authenticated user id.
type claims struct {
	jwt.RegisteredClaims
	UserID int64
}

func generateToken(userID int64, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func userIDFromToken(tokenString string, secretKey []byte) (int64, error) {
	c := &claims{}

	token, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return 0, err
	}

	if !token.Valid {
		return 0, common.ErrInvalidToken
	}

	return c.UserID, nil
}
