package agendamento

import (
	"context"

	domain "github.com/interserv/agendamento-api/internal/domain/agendamento"
	"github.com/interserv/agendamento-api/internal/domain/identity"
	"github.com/interserv/agendamento-api/internal/dto"
)

// ListAgendamentosCliente lista os agendamentos do contratante logado.
type ListAgendamentosCliente struct {
	repo domain.Repository
}

func NewListAgendamentosCliente(repo domain.Repository) *ListAgendamentosCliente {
	return &ListAgendamentosCliente{repo: repo}
}

func (uc *ListAgendamentosCliente) Execute(
	ctx context.Context,
	actor identity.Actor,
) ([]dto.AgendamentoDTO, error) {

	contr, err := contratanteOf(ctx, uc.repo, actor.UserID, domain.ErrSemPerfilCliente)
	if err != nil {
		return nil, err
	}

	ags, err := uc.repo.ListByContratante(ctx, contr.ID)
	if err != nil {
		return nil, err
	}
	return dto.NewAgendamentos(ags, true), nil
}

// ListAgendamentosPendentes é o mural de pedidos ainda sem prestador.
type ListAgendamentosPendentes struct {
	repo domain.Repository
}

func NewListAgendamentosPendentes(repo domain.Repository) *ListAgendamentosPendentes {
	return &ListAgendamentosPendentes{repo: repo}
}

func (uc *ListAgendamentosPendentes) Execute(
	ctx context.Context,
	actor identity.Actor,
) ([]dto.AgendamentoDTO, error) {

	if !actor.IsPrestador() {
		return nil, domain.ErrApenasPrestadores
	}

	ags, err := uc.repo.ListPendentes(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewAgendamentos(ags, false), nil
}

// ListAgendamentosPrestador lista o que o prestador aceitou ou concluiu.
type ListAgendamentosPrestador struct {
	repo domain.Repository
}

func NewListAgendamentosPrestador(repo domain.Repository) *ListAgendamentosPrestador {
	return &ListAgendamentosPrestador{repo: repo}
}

func (uc *ListAgendamentosPrestador) Execute(
	ctx context.Context,
	actor identity.Actor,
) ([]dto.AgendamentoDTO, error) {

	if !actor.IsPrestador() {
		return nil, domain.ErrApenasPrestadores
	}

	prest, err := prestadorOf(ctx, uc.repo, actor.UserID, domain.ErrSemPerfilPrest)
	if err != nil {
		return nil, err
	}

	ags, err := uc.repo.ListByPrestador(ctx, prest.ID, domain.OcupaHorario)
	if err != nil {
		return nil, err
	}
	return dto.NewAgendamentos(ags, true), nil
}
