package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/interserv/agendamento-api/internal/domain/agendamento"
	"github.com/interserv/agendamento-api/internal/models"
)

type AgendamentoGormRepository struct {
	db *gorm.DB
}

func NewAgendamentoGormRepository(db *gorm.DB) *AgendamentoGormRepository {
	return &AgendamentoGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

const ordemAgenda = "data_servico ASC, hora_servico ASC, id ASC"

// --------------------------------------------------
// Perfis
// --------------------------------------------------

func (r *AgendamentoGormRepository) FindContratanteByUsuario(
	ctx context.Context,
	usuarioID uint,
) (*models.Contratante, error) {

	var c models.Contratante
	if err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *AgendamentoGormRepository) FindPrestadorByUsuario(
	ctx context.Context,
	usuarioID uint,
) (*models.Prestador, error) {

	var p models.Prestador
	if err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// --------------------------------------------------
// Catálogo
// --------------------------------------------------

func (r *AgendamentoGormRepository) GetTipoServico(
	ctx context.Context,
	id uint,
) (*models.TipoServico, error) {

	var tipo models.TipoServico
	if err := r.db.WithContext(ctx).First(&tipo, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &tipo, nil
}

// --------------------------------------------------
// Agendamento
// --------------------------------------------------

func (r *AgendamentoGormRepository) CreateAgendamento(
	ctx context.Context,
	ag *models.Agendamento,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ag).Error
}

func (r *AgendamentoGormRepository) GetAgendamento(
	ctx context.Context,
	id uint,
) (*models.Agendamento, error) {

	var ag models.Agendamento
	if err := r.db.WithContext(ctx).
		Preload("TipoServico").
		Preload("Prestador.Usuario").
		Preload("Avaliacao").
		First(&ag, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ag, nil
}

func (r *AgendamentoGormRepository) ListByContratante(
	ctx context.Context,
	contratanteID uint,
) ([]models.Agendamento, error) {

	var ags []models.Agendamento
	err := r.db.WithContext(ctx).
		Preload("TipoServico").
		Where("contratante_id = ?", contratanteID).
		Order(ordemAgenda).
		Find(&ags).Error

	return ags, err
}

func (r *AgendamentoGormRepository) ListPendentes(
	ctx context.Context,
) ([]models.Agendamento, error) {

	var ags []models.Agendamento
	err := r.db.WithContext(ctx).
		Preload("TipoServico").
		Where("status = ?", string(domain.StatusPendente)).
		Order(ordemAgenda).
		Find(&ags).Error

	return ags, err
}

func (r *AgendamentoGormRepository) ListByPrestador(
	ctx context.Context,
	prestadorID uint,
	statuses []domain.Status,
) ([]models.Agendamento, error) {

	var ags []models.Agendamento
	err := r.db.WithContext(ctx).
		Preload("TipoServico").
		Where("prestador_id = ? AND status IN ?", prestadorID, statusStrings(statuses)).
		Order(ordemAgenda).
		Find(&ags).Error

	return ags, err
}

func (r *AgendamentoGormRepository) ListConcluidosByContratante(
	ctx context.Context,
	contratanteID uint,
) ([]models.Agendamento, error) {

	var ags []models.Agendamento
	err := r.db.WithContext(ctx).
		Preload("TipoServico").
		Preload("Prestador.Usuario").
		Preload("Avaliacao").
		Where("contratante_id = ? AND status = ?", contratanteID, string(domain.StatusConcluida)).
		Order("data_servico DESC, hora_servico DESC, id DESC").
		Find(&ags).Error

	return ags, err
}

// --------------------------------------------------
// Escritas condicionais
// --------------------------------------------------

func (r *AgendamentoGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AgendamentoGormRepository{db: tx})
	})
}

// HasSlotConflict trava a linha conflitante (quando existe) até o fim da
// transação do aceite. O SQLite ignora o FOR UPDATE.
func (r *AgendamentoGormRepository) HasSlotConflict(
	ctx context.Context,
	prestadorID uint,
	data datatypes.Date,
	hora datatypes.Time,
) (bool, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Agendamento{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"prestador_id = ? AND data_servico = ? AND hora_servico = ? AND status IN ?",
			prestadorID,
			data,
			hora,
			statusStrings(domain.OcupaHorario),
		).
		Limit(1).
		Pluck("id", &ids).Error; err != nil {
		return false, err
	}

	return len(ids) > 0, nil
}

func (r *AgendamentoGormRepository) AcceptIfPending(
	ctx context.Context,
	id uint,
	prestadorID uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Agendamento{}).
		Where("id = ? AND status = ?", id, string(domain.StatusPendente)).
		Updates(map[string]any{
			"status":       string(domain.StatusAceita),
			"prestador_id": prestadorID,
		})

	if res.Error != nil {
		if IsUniqueViolation(res.Error) {
			return false, domain.ErrSlotTaken
		}
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *AgendamentoGormRepository) SetPhaseTokenIfUnset(
	ctx context.Context,
	id uint,
	p domain.Phase,
	token string,
) (bool, error) {

	cols := p.Columns()

	res := r.db.WithContext(ctx).
		Model(&models.Agendamento{}).
		Where("id = ?", id).
		Where(clause.Eq{Column: clause.Column{Name: cols.QR}, Value: nil}).
		Update(cols.QR, token)

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *AgendamentoGormRepository) RedeemPhase(
	ctx context.Context,
	id uint,
	p domain.Phase,
	token string,
	at time.Time,
) (bool, error) {

	cols := p.Columns()

	q := r.db.WithContext(ctx).
		Model(&models.Agendamento{}).
		Where("id = ?", id).
		Where(clause.Eq{Column: clause.Column{Name: cols.Used}, Value: false}).
		Where(clause.Eq{Column: clause.Column{Name: cols.QR}, Value: token})

	if prev, ok := p.Previous(); ok {
		q = q.Where(clause.Neq{Column: clause.Column{Name: prev.Columns().At}, Value: nil})
	}

	updates := map[string]any{
		cols.Used: true,
		cols.At:   at,
	}

	if p == domain.PhaseEnd {
		updates["status"] = gorm.Expr(
			"CASE WHEN status IN (?, ?) THEN ? ELSE status END",
			string(domain.StatusPendente),
			string(domain.StatusAceita),
			string(domain.StatusConcluida),
		)
	}

	res := q.Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func statusStrings(statuses []domain.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// Compile-time check
var _ domain.Repository = (*AgendamentoGormRepository)(nil)
