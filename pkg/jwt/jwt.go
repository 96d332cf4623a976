package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret JWT_SECRET no configurado.
var ErrEmptySecret = errors.New("jwt: secret vazio")

// Claims el operador de la consola viaja en Subject y en Username.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Generate firma un token HS256 para el operador con validez de expMinutes.
func Generate(secret, username, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Username: username,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve el operador.
func Parse(secret, tokenString string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}
	if claims.Username == "" {
		return "", fmt.Errorf("jwt: token sem operador")
	}
	return claims.Username, nil
}
