package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/interserv/agendamento-api/internal/domain/identity"
	"github.com/interserv/agendamento-api/internal/httperr"
	"github.com/interserv/agendamento-api/internal/middleware"
)

var (
	ErrDadosInvalidos = httperr.Validation("dados_invalidos", "Dados inválidos.")
	ErrIDInvalido     = httperr.Validation("id_invalido", "ID inválido.")
)

// flexString aceita tanto "12" quanto 12 no JSON; formulários mandam os dois.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("esperado texto ou número")
	}
	*f = flexString(n.String())
	return nil
}

func (f *flexString) ptr() *string {
	if f == nil {
		return nil
	}
	s := string(*f)
	return &s
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.Respond(c, nil, ErrDadosInvalidos, "", "")
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.Respond(c, nil, ErrIDInvalido, "", "")
		return 0, false
	}
	return uint(id), true
}

// actorOf devolve o usuário autenticado; as rotas protegidas sempre o têm.
func actorOf(c *gin.Context) (identity.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		httperr.Unauthorized(c, "user_not_in_context", "Token ausente.")
		return identity.Actor{}, false
	}
	return actor, true
}
