package identity

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const issuer = "meetz-service"

// IssueToken signs a bearer token carrying the principal's email and kind.
func IssueToken(secret []byte, p Principal, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"email": p.Email,
		"kind":  string(p.Kind),
		"exp":   time.Now().Add(ttl).Unix(),
		"iss":   issuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken validates a bearer token and recovers the principal.
func ParseToken(secret []byte, tokenString string) (Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return Principal{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Principal{}, errors.New("invalid token claims")
	}

	email, _ := claims["email"].(string)
	kind, _ := claims["kind"].(string)
	if email == "" || (Kind(kind) != KindUser && Kind(kind) != KindManager) {
		return Principal{}, errors.New("token missing identity claims")
	}
	return Principal{Email: email, Kind: Kind(kind)}, nil
}
