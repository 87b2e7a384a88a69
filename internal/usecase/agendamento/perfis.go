package agendamento

import (
	"context"
	"errors"

	domain "github.com/interserv/agendamento-api/internal/domain/agendamento"
	"github.com/interserv/agendamento-api/internal/models"
)

// lookups comuns aos casos de uso; ErrNotFound vira o erro de negócio
// que cada operação pede

func contratanteOf(
	ctx context.Context,
	repo domain.Repository,
	usuarioID uint,
	missing error,
) (*models.Contratante, error) {

	c, err := repo.FindContratanteByUsuario(ctx, usuarioID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, missing
	}
	return c, err
}

func prestadorOf(
	ctx context.Context,
	repo domain.Repository,
	usuarioID uint,
	missing error,
) (*models.Prestador, error) {

	p, err := repo.FindPrestadorByUsuario(ctx, usuarioID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, missing
	}
	return p, err
}

func loadAgendamento(
	ctx context.Context,
	repo domain.Repository,
	id uint,
) (*models.Agendamento, error) {

	ag, err := repo.GetAgendamento(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrAgendamentoNaoEncontrado
	}
	return ag, err
}

func assignedTo(ag *models.Agendamento, prestadorID uint) bool {
	return ag.PrestadorID != nil && *ag.PrestadorID == prestadorID
}
