package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/interserv/agendamento-api/internal/domain/avaliacao"
	"github.com/interserv/agendamento-api/internal/models"
)

// AvaliacaoGormRepository reaproveita as leituras de perfil e agendamento.
type AvaliacaoGormRepository struct {
	*AgendamentoGormRepository
}

func NewAvaliacaoGormRepository(db *gorm.DB) *AvaliacaoGormRepository {
	return &AvaliacaoGormRepository{
		AgendamentoGormRepository: NewAgendamentoGormRepository(db),
	}
}

func (r *AvaliacaoGormRepository) ExistsAvaliacao(
	ctx context.Context,
	agendamentoID uint,
	clienteID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Avaliacao{}).
		Where("agendamento_id = ? AND cliente_id = ?", agendamentoID, clienteID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AvaliacaoGormRepository) CreateAvaliacao(
	ctx context.Context,
	av *models.Avaliacao,
) error {
	if err := r.db.WithContext(ctx).Create(av).Error; err != nil {
		if IsUniqueViolation(err) {
			return domain.ErrJaAvaliado
		}
		return err
	}
	return nil
}

func (r *AvaliacaoGormRepository) ListNotasByPrestador(
	ctx context.Context,
	prestadorID uint,
) ([]int, error) {

	var notas []int
	err := r.db.WithContext(ctx).
		Model(&models.Avaliacao{}).
		Where("prestador_id = ?", prestadorID).
		Pluck("nota", &notas).Error

	return notas, err
}

var _ domain.Repository = (*AvaliacaoGormRepository)(nil)
