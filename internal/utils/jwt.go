package utils

import (
	"errors"
	"fmt"
	"portal-berita-server/internal/config"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const loginTokenType = "login"

// LoginClaims 登录令牌，ID 为用户的 ObjectID 十六进制串
type LoginClaims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	Type string `json:"type"` // "login"
	jwt.RegisteredClaims
}

func getSecret() []byte {
	return []byte(config.Get().JWT.Secret)
}

func GenerateLoginToken(id, role string, duration time.Duration) (string, error) {
	claims := LoginClaims{
		ID:   id,
		Role: role,
		Type: loginTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "portal-berita-server",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getSecret())
}

func ParseLoginToken(tokenString string) (*LoginClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &LoginClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getSecret(), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*LoginClaims); ok && token.Valid {
		if claims.Type != loginTokenType {
			return nil, errors.New("invalid token type")
		}
		if claims.ID == "" {
			return nil, errors.New("invalid token subject")
		}
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
