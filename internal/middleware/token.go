package middleware

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/interserv/agendamento-api/internal/domain/identity"
)

// SignToken emite o JWT lido pelo AuthMiddleware: claims {id, tipo}.
func SignToken(secret string, userID uint, role identity.Role, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"id":   userID,
		"tipo": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
