package agendamento

import (
	"context"
	"errors"

	"github.com/interserv/agendamento-api/internal/audit"
	domain "github.com/interserv/agendamento-api/internal/domain/agendamento"
	"github.com/interserv/agendamento-api/internal/domain/identity"
	"github.com/interserv/agendamento-api/internal/dto"
)

type AcceptAgendamento struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewAcceptAgendamento(
	repo domain.Repository,
	audit audit.Recorder,
) *AcceptAgendamento {
	return &AcceptAgendamento{
		repo:  repo,
		audit: audit,
	}
}

func (uc *AcceptAgendamento) Execute(
	ctx context.Context,
	actor identity.Actor,
	agendamentoID uint,
) (*dto.AceiteDTO, error) {

	if !actor.IsPrestador() {
		return nil, domain.ErrApenasPrestadores
	}

	prest, err := prestadorOf(ctx, uc.repo, actor.UserID, domain.ErrPerfilIncompleto)
	if err != nil {
		return nil, err
	}

	ag, err := loadAgendamento(ctx, uc.repo, agendamentoID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanAccept(domain.Status(ag.Status)); err != nil {
		return nil, err
	}

	// conflito e escrita condicional na mesma transação; o índice único
	// parcial segura o que escapar entre transações concorrentes
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		conflict, err := tx.HasSlotConflict(ctx, prest.ID, ag.DataServico, ag.HoraServico)
		if err != nil {
			return err
		}
		if conflict {
			return domain.ErrConflitoHorario
		}

		ok, err := tx.AcceptIfPending(ctx, ag.ID, prest.ID)
		if errors.Is(err, domain.ErrSlotTaken) {
			return domain.ErrConflitoHorario
		}
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrSomentePendentes
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := domain.Accept(ag, prest.ID); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UsuarioID: audit.UintPtr(actor.UserID),
		Action:    audit.ActionAgendamentoAceito,
		Entity:    "agendamento",
		EntityID:  audit.UintPtr(ag.ID),
		Metadata:  map[string]uint{"prestador_id": prest.ID},
	})

	return &dto.AceiteDTO{
		OK:          true,
		ID:          ag.ID,
		Status:      ag.Status,
		PrestadorID: ag.PrestadorID,
	}, nil
}
