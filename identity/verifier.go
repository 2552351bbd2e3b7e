package identity

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid identity token")

// Verifier decodes an externally-issued identity token into the canonical
// phone number it was issued for. The token itself comes from the OTP
// provider; this service only checks it against the record's contact.
type Verifier interface {
	PhoneNumber(token string) (string, error)
}

// JWTVerifier verifies HS256 identity tokens carrying a phone_number claim.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) PhoneNumber(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	phone, ok := claims["phone_number"].(string)
	if !ok || phone == "" {
		return "", ErrInvalidToken
	}

	return phone, nil
}
