package avaliacao

import (
	"context"
	"errors"
	"strings"

	"github.com/interserv/agendamento-api/internal/audit"
	agdomain "github.com/interserv/agendamento-api/internal/domain/agendamento"
	domain "github.com/interserv/agendamento-api/internal/domain/avaliacao"
	"github.com/interserv/agendamento-api/internal/domain/identity"
	"github.com/interserv/agendamento-api/internal/dto"
	"github.com/interserv/agendamento-api/internal/models"
)

type CreateAvaliacaoInput struct {
	AgendamentoID uint
	Nota          int
	Comentario    *string
}

type CreateAvaliacao struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewCreateAvaliacao(
	repo domain.Repository,
	audit audit.Recorder,
) *CreateAvaliacao {
	return &CreateAvaliacao{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateAvaliacao) Execute(
	ctx context.Context,
	actor identity.Actor,
	in CreateAvaliacaoInput,
) (*dto.AvaliacaoCriadaDTO, error) {

	if in.AgendamentoID == 0 {
		return nil, domain.ErrAgendamentoObrigatorio
	}
	if err := domain.ValidateNota(in.Nota); err != nil {
		return nil, err
	}

	contr, err := uc.repo.FindContratanteByUsuario(ctx, actor.UserID)
	if errors.Is(err, agdomain.ErrNotFound) {
		return nil, domain.ErrApenasContratantes
	}
	if err != nil {
		return nil, err
	}

	ag, err := uc.repo.GetAgendamento(ctx, in.AgendamentoID)
	if errors.Is(err, agdomain.ErrNotFound) {
		return nil, agdomain.ErrAgendamentoNaoEncontrado
	}
	if err != nil {
		return nil, err
	}

	if err := domain.CanRate(ag, contr.ID); err != nil {
		return nil, err
	}

	exists, err := uc.repo.ExistsAvaliacao(ctx, ag.ID, contr.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrJaAvaliado
	}

	av := &models.Avaliacao{
		AgendamentoID: ag.ID,
		ClienteID:     contr.ID,
		PrestadorID:   *ag.PrestadorID,
		Nota:          in.Nota,
	}
	if in.Comentario != nil {
		if c := strings.TrimSpace(*in.Comentario); c != "" {
			av.Comentario = &c
		}
	}

	// o índice único cobre a corrida entre a checagem e o insert
	if err := uc.repo.CreateAvaliacao(ctx, av); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UsuarioID: audit.UintPtr(actor.UserID),
		Action:    audit.ActionAvaliacaoCriada,
		Entity:    "avaliacao",
		EntityID:  audit.UintPtr(av.ID),
		Metadata:  map[string]any{"agendamento_id": ag.ID, "nota": av.Nota},
	})

	return &dto.AvaliacaoCriadaDTO{OK: true, ID: av.ID}, nil
}
