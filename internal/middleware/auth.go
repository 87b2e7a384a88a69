package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/interserv/agendamento-api/internal/config"
	"github.com/interserv/agendamento-api/internal/domain/identity"
	"github.com/interserv/agendamento-api/internal/httperr"
)

const (
	ContextUserID    = "userID"
	ContextUserRole  = "userRole"
	ContextRequestID = "requestID"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "missing_authorization_header", "Token ausente.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			unauthorized(c, "invalid_authorization_header", "Token ausente.")
			return
		}

		token, err := jwt.Parse(strings.TrimSpace(parts[1]), func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			unauthorized(c, "invalid_token", "Token inválido ou expirado.")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			unauthorized(c, "invalid_token_claims", "Token inválido ou expirado.")
			return
		}

		userID, ok1 := claims["id"].(float64)
		tipo, _ := claims["tipo"].(string)
		role, ok2 := identity.ParseRole(tipo)
		if !ok1 || userID <= 0 || !ok2 {
			unauthorized(c, "invalid_token_payload", "Token inválido ou expirado.")
			return
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// ActorFrom lê a identidade gravada pelo AuthMiddleware.
func ActorFrom(c *gin.Context) (identity.Actor, bool) {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return identity.Actor{}, false
	}
	userID, ok := id.(uint)
	if !ok {
		return identity.Actor{}, false
	}
	role, _ := c.Get(ContextUserRole)
	r, _ := role.(identity.Role)

	return identity.Actor{UserID: userID, Role: r}, true
}

func unauthorized(c *gin.Context, code, message string) {
	httperr.Unauthorized(c, code, message)
	c.Abort()
}
