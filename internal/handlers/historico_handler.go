package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/interserv/agendamento-api/internal/httperr"
	"github.com/interserv/agendamento-api/internal/httpresp"
	ucHistorico "github.com/interserv/agendamento-api/internal/usecase/historico"
)

type HistoricoHandler struct {
	cliente *ucHistorico.HistoricoCliente
	log     *zap.Logger
}

func NewHistoricoHandler(cliente *ucHistorico.HistoricoCliente, log *zap.Logger) *HistoricoHandler {
	return &HistoricoHandler{cliente: cliente, log: log}
}

func (h *HistoricoHandler) Cliente(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	items, err := h.cliente.Execute(c.Request.Context(), actor)
	if err != nil {
		httperr.Respond(c, h.log, err, "erro_historico", "Erro ao carregar histórico.")
		return
	}
	httpresp.List(c, items)
}
