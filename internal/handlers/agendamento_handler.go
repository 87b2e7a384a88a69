package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/interserv/agendamento-api/internal/httperr"
	"github.com/interserv/agendamento-api/internal/httpresp"
	ucAgendamento "github.com/interserv/agendamento-api/internal/usecase/agendamento"
)

// ======================================================
// HANDLER
// ======================================================

type AgendamentoHandler struct {
	create    *ucAgendamento.CreateAgendamento
	listCli   *ucAgendamento.ListAgendamentosCliente
	listPend  *ucAgendamento.ListAgendamentosPendentes
	listPrest *ucAgendamento.ListAgendamentosPrestador
	accept    *ucAgendamento.AcceptAgendamento
	status    *ucAgendamento.GetStatus
	issueQR   *ucAgendamento.IssueQRCode
	scanQR    *ucAgendamento.ScanQRCode
	appURL    string
	log       *zap.Logger
}

func NewAgendamentoHandler(
	create *ucAgendamento.CreateAgendamento,
	listCli *ucAgendamento.ListAgendamentosCliente,
	listPend *ucAgendamento.ListAgendamentosPendentes,
	listPrest *ucAgendamento.ListAgendamentosPrestador,
	accept *ucAgendamento.AcceptAgendamento,
	status *ucAgendamento.GetStatus,
	issueQR *ucAgendamento.IssueQRCode,
	scanQR *ucAgendamento.ScanQRCode,
	appURL string,
	log *zap.Logger,
) *AgendamentoHandler {
	return &AgendamentoHandler{
		create:    create,
		listCli:   listCli,
		listPend:  listPend,
		listPrest: listPrest,
		accept:    accept,
		status:    status,
		issueQR:   issueQR,
		scanQR:    scanQR,
		appURL:    appURL,
		log:       log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAgendamentoRequest struct {
	TipoServicoID flexString  `json:"tipo_servico_id"`
	Data          string      `json:"data"`
	Hora          string      `json:"hora"`
	Endereco      string      `json:"endereco"`
	Descricao     *string     `json:"descricao"`
	DuracaoHoras  *flexString `json:"duracao_horas"`
}

type ScanRequest struct {
	Phase string `json:"phase"`
	Token string `json:"token"`
}

// ======================================================
// CREATE / LISTAS
// ======================================================

func (h *AgendamentoHandler) Create(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	var req CreateAgendamentoRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.create.Execute(c.Request.Context(), actor, ucAgendamento.CreateAgendamentoInput{
		TipoServicoID: string(req.TipoServicoID),
		Data:          req.Data,
		Hora:          req.Hora,
		Endereco:      req.Endereco,
		Descricao:     req.Descricao,
		DuracaoHoras:  req.DuracaoHoras.ptr(),
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "erro_criar_agendamento", "Erro ao criar agendamento.")
		return
	}

	httpresp.Created(c, out)
}

func (h *AgendamentoHandler) ListCliente(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	items, err := h.listCli.Execute(c.Request.Context(), actor)
	if err != nil {
		httperr.Respond(c, h.log, err, "erro_listar_agendamentos", "Erro ao listar agendamentos.")
		return
	}
	httpresp.List(c, items)
}

func (h *AgendamentoHandler) ListPendentes(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	items, err := h.listPend.Execute(c.Request.Context(), actor)
	if err != nil {
		httperr.Respond(c, h.log, err, "erro_listar_pendentes", "Erro ao listar pendentes.")
		return
	}
	httpresp.List(c, items)
}

func (h *AgendamentoHandler) ListPrestador(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	items, err := h.listPrest.Execute(c.Request.Context(), actor)
	if err != nil {
		httperr.Respond(c, h.log, err, "erro_listar_agendamentos", "Erro ao listar agendamentos do prestador.")
		return
	}
	httpresp.List(c, items)
}

// ======================================================
// ACEITE / STATUS
// ======================================================

func (h *AgendamentoHandler) Aceitar(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	out, err := h.accept.Execute(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Respond(c, h.log, err, "erro_aceitar", "Erro ao aceitar agendamento.")
		return
	}
	httpresp.OK(c, out)
}

func (h *AgendamentoHandler) Status(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	out, err := h.status.Execute(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Respond(c, h.log, err, "erro_status", "Erro ao consultar status.")
		return
	}
	httpresp.OK(c, out)
}

// ======================================================
// QR CODE
// ======================================================

func (h *AgendamentoHandler) QRCode(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	out, err := h.issueQR.Execute(c.Request.Context(), actor, ucAgendamento.IssueQRCodeInput{
		AgendamentoID: id,
		Phase:         c.Query("phase"),
		BaseURL:       h.baseURL(c),
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "erro_qrcode", "Erro ao gerar QR.")
		return
	}
	httpresp.OK(c, out)
}

func (h *AgendamentoHandler) Scan(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req ScanRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.scanQR.Execute(c.Request.Context(), actor, ucAgendamento.ScanQRCodeInput{
		AgendamentoID: id,
		Phase:         req.Phase,
		Token:         req.Token,
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "erro_scan", "Erro ao validar QR.")
		return
	}
	httpresp.OK(c, out)
}

// baseURL usa APP_URL quando configurado; senão o host da própria requisição.
func (h *AgendamentoHandler) baseURL(c *gin.Context) string {
	if h.appURL != "" {
		return h.appURL
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	return scheme + "://" + c.Request.Host
}
