package agendamento

import (
	"context"
	"errors"

	domain "github.com/interserv/agendamento-api/internal/domain/agendamento"
	"github.com/interserv/agendamento-api/internal/domain/identity"
	"github.com/interserv/agendamento-api/internal/dto"
	"github.com/interserv/agendamento-api/internal/models"
)

// GetStatus é o polling do app: estado, etapas e se já foi avaliado.
type GetStatus struct {
	repo domain.Repository
}

func NewGetStatus(repo domain.Repository) *GetStatus {
	return &GetStatus{repo: repo}
}

func (uc *GetStatus) Execute(
	ctx context.Context,
	actor identity.Actor,
	agendamentoID uint,
) (*dto.StatusDTO, error) {

	ag, err := loadAgendamento(ctx, uc.repo, agendamentoID)
	if err != nil {
		return nil, err
	}

	allowed, err := uc.canSee(ctx, actor, ag)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrAcessoNegado
	}

	out := &dto.StatusDTO{
		ID:        ag.ID,
		Status:    ag.Status,
		CheckinAt: ag.Checkin.At,
		StartAt:   ag.Start.At,
		EndAt:     ag.End.At,
		Avaliado:  ag.Avaliacao != nil,
	}
	if ag.TipoServico != nil {
		out.TipoNome = &ag.TipoServico.Nome
	}
	if ag.Prestador != nil && ag.Prestador.Usuario != nil {
		out.PrestadorNome = &ag.Prestador.Usuario.NomeUsuario
	}
	return out, nil
}

// canSee libera o contratante dono e o prestador atribuído.
func (uc *GetStatus) canSee(
	ctx context.Context,
	actor identity.Actor,
	ag *models.Agendamento,
) (bool, error) {

	contr, err := uc.repo.FindContratanteByUsuario(ctx, actor.UserID)
	switch {
	case err == nil && contr.ID == ag.ContratanteID:
		return true, nil
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return false, err
	}

	if !actor.IsPrestador() {
		return false, nil
	}

	prest, err := uc.repo.FindPrestadorByUsuario(ctx, actor.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return assignedTo(ag, prest.ID), nil
}
