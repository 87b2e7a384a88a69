package historico

import (
	"context"
	"errors"

	domain "github.com/interserv/agendamento-api/internal/domain/agendamento"
	"github.com/interserv/agendamento-api/internal/domain/identity"
	"github.com/interserv/agendamento-api/internal/dto"
	"github.com/interserv/agendamento-api/internal/httperr"
	"github.com/interserv/agendamento-api/internal/models"
)

var ErrApenasContratantes = httperr.Forbidden("apenas_contratantes", "Apenas contratantes.")

// HistoricoCliente lista os serviços concluídos do contratante, do mais
// recente para o mais antigo, com a avaliação quando houver.
type HistoricoCliente struct {
	repo domain.Repository
}

func NewHistoricoCliente(repo domain.Repository) *HistoricoCliente {
	return &HistoricoCliente{repo: repo}
}

func (uc *HistoricoCliente) Execute(
	ctx context.Context,
	actor identity.Actor,
) ([]dto.HistoricoItemDTO, error) {

	contr, err := uc.repo.FindContratanteByUsuario(ctx, actor.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrApenasContratantes
	}
	if err != nil {
		return nil, err
	}

	ags, err := uc.repo.ListConcluidosByContratante(ctx, contr.ID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.HistoricoItemDTO, 0, len(ags))
	for i := range ags {
		out = append(out, toItem(&ags[i]))
	}
	return out, nil
}

func toItem(ag *models.Agendamento) dto.HistoricoItemDTO {
	it := dto.HistoricoItemDTO{
		ID:            ag.ID,
		TipoServicoID: ag.TipoServicoID,
		DataServico:   dto.DataServico(ag),
		HoraServico:   ag.HoraServico.String(),
		DuracaoHoras:  ag.DuracaoHoras,
		Endereco:      ag.Endereco,
		Descricao:     ag.Descricao,
		PrestadorID:   ag.PrestadorID,
		CheckinAt:     ag.Checkin.At,
		StartAt:       ag.Start.At,
		EndAt:         ag.End.At,
	}

	if ag.TipoServico != nil {
		it.TipoNome = &ag.TipoServico.Nome
	}
	if ag.Prestador != nil && ag.Prestador.Usuario != nil {
		it.PrestadorNome = &ag.Prestador.Usuario.NomeUsuario
		it.PrestadorEmail = &ag.Prestador.Usuario.Email
	}
	if av := ag.Avaliacao; av != nil {
		it.Avaliacao = &dto.AvaliacaoResumidaDTO{
			ID:         av.ID,
			Nota:       av.Nota,
			Comentario: av.Comentario,
			CreatedAt:  av.CreatedAt,
		}
	}
	return it
}
