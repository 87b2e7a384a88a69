package handlers

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainAvaliacao "github.com/interserv/agendamento-api/internal/domain/avaliacao"
	"github.com/interserv/agendamento-api/internal/httperr"
	"github.com/interserv/agendamento-api/internal/httpresp"
	ucAvaliacao "github.com/interserv/agendamento-api/internal/usecase/avaliacao"
)

type AvaliacaoHandler struct {
	create *ucAvaliacao.CreateAvaliacao
	resumo *ucAvaliacao.ResumoPrestador
	log    *zap.Logger
}

func NewAvaliacaoHandler(
	create *ucAvaliacao.CreateAvaliacao,
	resumo *ucAvaliacao.ResumoPrestador,
	log *zap.Logger,
) *AvaliacaoHandler {
	return &AvaliacaoHandler{create: create, resumo: resumo, log: log}
}

type CreateAvaliacaoRequest struct {
	AgendamentoID flexString `json:"agendamentoId"`
	Nota          flexString `json:"nota"`
	Comentario    *string    `json:"comentario"`
}

func (h *AvaliacaoHandler) Create(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	var req CreateAvaliacaoRequest
	if !bindJSON(c, &req) {
		return
	}

	agID, err := strconv.ParseUint(strings.TrimSpace(string(req.AgendamentoID)), 10, 64)
	if err != nil || agID == 0 {
		httperr.Respond(c, h.log, domainAvaliacao.ErrAgendamentoObrigatorio, "", "")
		return
	}

	// "4" e 4.0 valem; 4.5 não
	nota, err := strconv.ParseFloat(strings.TrimSpace(string(req.Nota)), 64)
	if err != nil || nota != math.Trunc(nota) {
		httperr.Respond(c, h.log, domainAvaliacao.ErrNotaInvalida, "", "")
		return
	}

	out, err := h.create.Execute(c.Request.Context(), actor, ucAvaliacao.CreateAvaliacaoInput{
		AgendamentoID: uint(agID),
		Nota:          int(nota),
		Comentario:    req.Comentario,
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "erro_criar_avaliacao", "Erro ao criar avaliação.")
		return
	}
	httpresp.Created(c, out)
}

func (h *AvaliacaoHandler) ResumoPrestador(c *gin.Context) {
	if _, ok := actorOf(c); !ok {
		return
	}

	prestadorID, err := strconv.ParseUint(c.Param("prestadorId"), 10, 64)
	if err != nil || prestadorID == 0 {
		httperr.Respond(c, h.log, domainAvaliacao.ErrPrestadorInvalido, "", "")
		return
	}

	out, err := h.resumo.Execute(c.Request.Context(), uint(prestadorID))
	if err != nil {
		httperr.Respond(c, h.log, err, "erro_resumo", "Erro ao obter resumo.")
		return
	}
	httpresp.OK(c, out)
}
