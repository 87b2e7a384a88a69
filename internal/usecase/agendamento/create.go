package agendamento

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gorm.io/datatypes"

	"github.com/interserv/agendamento-api/internal/audit"
	domain "github.com/interserv/agendamento-api/internal/domain/agendamento"
	"github.com/interserv/agendamento-api/internal/domain/identity"
	"github.com/interserv/agendamento-api/internal/dto"
	"github.com/interserv/agendamento-api/internal/httperr"
	"github.com/interserv/agendamento-api/internal/models"
	"github.com/interserv/agendamento-api/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

// CreateAgendamentoInput chega como texto; a validação é toda daqui.
type CreateAgendamentoInput struct {
	TipoServicoID string
	Data          string
	Hora          string
	Endereco      string
	Descricao     *string
	DuracaoHoras  *string
}

var (
	ErrTipoObrigatorio     = httperr.Validation("tipo_servico_obrigatorio", "tipo_servico_id é obrigatório.")
	ErrDataInvalida        = httperr.Validation("data_invalida", "Data inválida. Use YYYY-MM-DD.")
	ErrHoraInvalida        = httperr.Validation("hora_invalida", "Hora inválida. Use HH:MM ou HH:MM:SS.")
	ErrEnderecoObrigatorio = httperr.Validation("endereco_obrigatorio", "Endereço é obrigatório.")
	ErrDuracaoInvalida     = httperr.Validation("duracao_invalida", "duracao_horas deve ser um número positivo menor que 100.")
)

type novoAgendamento struct {
	tipoServicoID uint
	data          datatypes.Date
	hora          datatypes.Time
	endereco      string
	descricao     *string
	duracaoHoras  *float64
}

// normalize confere os campos na ordem do formulário; o primeiro erro vence.
func (in CreateAgendamentoInput) normalize() (novoAgendamento, error) {
	var out novoAgendamento

	tipoID, err := strconv.ParseUint(strings.TrimSpace(in.TipoServicoID), 10, 64)
	if err != nil || tipoID == 0 {
		return out, ErrTipoObrigatorio
	}
	out.tipoServicoID = uint(tipoID)

	data, ok := validators.ParseISODate(strings.TrimSpace(in.Data))
	if !ok {
		return out, ErrDataInvalida
	}
	out.data = datatypes.Date(data)

	h, m, s, ok := validators.ParseClock(strings.TrimSpace(in.Hora))
	if !ok {
		return out, ErrHoraInvalida
	}
	out.hora = datatypes.NewTime(h, m, s, 0)

	out.endereco = strings.TrimSpace(in.Endereco)
	if out.endereco == "" {
		return out, ErrEnderecoObrigatorio
	}

	if in.Descricao != nil {
		if d := strings.TrimSpace(*in.Descricao); d != "" {
			out.descricao = &d
		}
	}

	if in.DuracaoHoras != nil && strings.TrimSpace(*in.DuracaoHoras) != "" {
		v, ok := validators.ParseDecimal(*in.DuracaoHoras)
		if !ok || v <= 0 || v >= 100 {
			return out, ErrDuracaoInvalida
		}
		out.duracaoHoras = &v
	}

	return out, nil
}

// ======================================================
// USE CASE
// ======================================================

type CreateAgendamento struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewCreateAgendamento(
	repo domain.Repository,
	audit audit.Recorder,
) *CreateAgendamento {
	return &CreateAgendamento{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAgendamento) Execute(
	ctx context.Context,
	actor identity.Actor,
	in CreateAgendamentoInput,
) (*dto.AgendamentoDTO, error) {

	// --------------------------------------------------
	// 1. Payload
	// --------------------------------------------------
	novo, err := in.normalize()
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Perfil de contratante
	// --------------------------------------------------
	contr, err := contratanteOf(ctx, uc.repo, actor.UserID, domain.ErrSemPerfilCliente)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Tipo de serviço
	// --------------------------------------------------
	tipo, err := uc.repo.GetTipoServico(ctx, novo.tipoServicoID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrTipoNaoEncontrado
	}
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Gravação (pendente, sem prestador)
	// --------------------------------------------------
	ag := &models.Agendamento{
		ContratanteID: contr.ID,
		TipoServicoID: tipo.ID,
		Descricao:     novo.descricao,
		DataServico:   novo.data,
		HoraServico:   novo.hora,
		DuracaoHoras:  novo.duracaoHoras,
		Endereco:      novo.endereco,
		Status:        string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateAgendamento(ctx, ag); err != nil {
		return nil, err
	}
	ag.TipoServico = tipo

	// --------------------------------------------------
	// 5. Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UsuarioID: audit.UintPtr(actor.UserID),
		Action:    audit.ActionAgendamentoCriado,
		Entity:    "agendamento",
		EntityID:  audit.UintPtr(ag.ID),
	})

	out := dto.NewAgendamento(ag, true)
	return &out, nil
}
