package avaliacao

import (
	"context"

	"github.com/interserv/agendamento-api/internal/models"
)

type Repository interface {
	FindContratanteByUsuario(ctx context.Context, usuarioID uint) (*models.Contratante, error)
	GetAgendamento(ctx context.Context, id uint) (*models.Agendamento, error)

	ExistsAvaliacao(ctx context.Context, agendamentoID, clienteID uint) (bool, error)
	CreateAvaliacao(ctx context.Context, av *models.Avaliacao) error
	ListNotasByPrestador(ctx context.Context, prestadorID uint) ([]int, error)
}
