package agendamento

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"

	"github.com/interserv/agendamento-api/internal/models"
)

var (
	ErrNotFound = errors.New("agendamento: registro não encontrado")
	// ErrSlotTaken vem do índice único de (prestador, data, hora).
	ErrSlotTaken = errors.New("agendamento: horário já ocupado")
)

// SlotConflictChecker responde se o prestador já tem um agendamento aceito
// ou concluído no mesmo dia e hora.
type SlotConflictChecker interface {
	HasSlotConflict(
		ctx context.Context,
		prestadorID uint,
		data datatypes.Date,
		hora datatypes.Time,
	) (bool, error)
}

type Repository interface {
	SlotConflictChecker

	// -------- Perfis --------
	FindContratanteByUsuario(ctx context.Context, usuarioID uint) (*models.Contratante, error)
	FindPrestadorByUsuario(ctx context.Context, usuarioID uint) (*models.Prestador, error)

	// -------- Catálogo --------
	GetTipoServico(ctx context.Context, id uint) (*models.TipoServico, error)

	// -------- Agendamento (leitura) --------
	CreateAgendamento(ctx context.Context, ag *models.Agendamento) error

	GetAgendamento(ctx context.Context, id uint) (*models.Agendamento, error)

	ListByContratante(ctx context.Context, contratanteID uint) ([]models.Agendamento, error)
	ListPendentes(ctx context.Context) ([]models.Agendamento, error)
	ListByPrestador(ctx context.Context, prestadorID uint, statuses []Status) ([]models.Agendamento, error)
	ListConcluidosByContratante(ctx context.Context, contratanteID uint) ([]models.Agendamento, error)

	// -------- Agendamento (escritas condicionais) --------
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// AcceptIfPending só altera se o status ainda for pendente.
	AcceptIfPending(ctx context.Context, id uint, prestadorID uint) (bool, error)

	// SetPhaseTokenIfUnset grava o token apenas se a etapa ainda não tiver um.
	SetPhaseTokenIfUnset(ctx context.Context, id uint, p Phase, token string) (bool, error)

	// RedeemPhase marca a etapa como usada se ainda não foi, o token confere
	// e a etapa anterior já foi registrada.
	RedeemPhase(ctx context.Context, id uint, p Phase, token string, at time.Time) (bool, error)
}
