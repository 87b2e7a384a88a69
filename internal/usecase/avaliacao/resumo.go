package avaliacao

import (
	"context"

	domain "github.com/interserv/agendamento-api/internal/domain/avaliacao"
	"github.com/interserv/agendamento-api/internal/dto"
)

// ResumoPrestador agrega as notas recebidas por um prestador.
type ResumoPrestador struct {
	repo domain.Repository
}

func NewResumoPrestador(repo domain.Repository) *ResumoPrestador {
	return &ResumoPrestador{repo: repo}
}

func (uc *ResumoPrestador) Execute(
	ctx context.Context,
	prestadorID uint,
) (*dto.ResumoDTO, error) {

	if prestadorID == 0 {
		return nil, domain.ErrPrestadorInvalido
	}

	notas, err := uc.repo.ListNotasByPrestador(ctx, prestadorID)
	if err != nil {
		return nil, err
	}

	r := domain.Resume(notas)
	return &dto.ResumoDTO{
		Media:        r.Media,
		Total:        r.Total,
		Distribuicao: r.Distribuicao,
	}, nil
}
