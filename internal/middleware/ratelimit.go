package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/interserv/agendamento-api/internal/httperr"
)

// RateLimiter guarda um token bucket por usuário autenticado (ou IP).
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
	burst    int
	log      *zap.Logger
}

func NewRateLimiter(perMinute, burst int, log *zap.Logger) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 30
	}
	if burst <= 0 {
		burst = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		every:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		log:      log,
	}
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.every, l.burst)
		l.limiters[key] = lim
	}
	return lim
}

// Middleware precisa rodar depois do AuthMiddleware para limitar por usuário.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if actor, ok := ActorFrom(c); ok {
			key = fmt.Sprintf("user:%d", actor.UserID)
		}

		if !l.limiter(key).Allow() {
			l.log.Warn("rate limit exceeded",
				zap.String("key", key),
				zap.String("path", c.FullPath()),
			)
			httperr.Write(c, http.StatusTooManyRequests, "muitas_requisicoes", "Muitas tentativas. Aguarde e tente novamente.")
			c.Abort()
			return
		}
		c.Next()
	}
}
