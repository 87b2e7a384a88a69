package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond escreve err como resposta. Erros de negócio saem com seu código;
// qualquer outro erro é logado e vira 500 com a mensagem fallback.
func Respond(c *gin.Context, log *zap.Logger, err error, fallbackCode, fallbackMessage string) {
	var be BusinessError
	if errors.As(err, &be) {
		msg := be.Message
		if msg == "" {
			msg = be.Code
		}
		Write(c, be.Status(), be.Code, msg)
		return
	}

	if log != nil {
		log.Error(fallbackCode,
			zap.Error(err),
			zap.String("path", c.FullPath()),
		)
	}
	Internal(c, fallbackCode, fallbackMessage)
}
