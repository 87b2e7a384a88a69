package agendamento

import (
	"context"
	"strings"

	"github.com/interserv/agendamento-api/internal/audit"
	domain "github.com/interserv/agendamento-api/internal/domain/agendamento"
	"github.com/interserv/agendamento-api/internal/domain/identity"
	"github.com/interserv/agendamento-api/internal/dto"
	"github.com/interserv/agendamento-api/internal/timezone"
)

type ScanQRCodeInput struct {
	AgendamentoID uint
	Phase         string
	Token         string
}

// ScanQRCode consome o token de uma etapa; cada etapa vale uma vez só.
type ScanQRCode struct {
	repo  domain.Repository
	clock timezone.Clock
	audit audit.Recorder
}

func NewScanQRCode(
	repo domain.Repository,
	clock timezone.Clock,
	audit audit.Recorder,
) *ScanQRCode {
	return &ScanQRCode{
		repo:  repo,
		clock: clock,
		audit: audit,
	}
}

func (uc *ScanQRCode) Execute(
	ctx context.Context,
	actor identity.Actor,
	in ScanQRCodeInput,
) (*dto.ScanDTO, error) {

	// 1. prestador com perfil
	if !actor.IsPrestador() {
		return nil, domain.ErrApenasPrestadores
	}
	prest, err := prestadorOf(ctx, uc.repo, actor.UserID, domain.ErrSemPerfilPrest)
	if err != nil {
		return nil, err
	}

	// 2. agendamento atribuído a ele
	ag, err := loadAgendamento(ctx, uc.repo, in.AgendamentoID)
	if err != nil {
		return nil, err
	}
	if !assignedTo(ag, prest.ID) {
		return nil, domain.ErrNaoAtribuido
	}

	// 3. dados da leitura
	phase, err := domain.ParsePhase(in.Phase)
	if err != nil {
		return nil, err
	}
	token := strings.TrimSpace(in.Token)
	if token == "" {
		return nil, domain.ErrTokenObrigatorio
	}

	// 4. regras sobre o estado lido, depois a escrita condicional
	now := uc.clock()
	if err := domain.Redeem(ag, phase, token, now); err != nil {
		return nil, err
	}

	ok, err := uc.repo.RedeemPhase(ctx, ag.ID, phase, token, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// outra leitura consumiu a etapa entre o load e o update
		return nil, domain.ErrQRUtilizado
	}

	uc.audit.Dispatch(audit.Event{
		UsuarioID: audit.UintPtr(actor.UserID),
		Action:    audit.ActionQRValidado,
		Entity:    "agendamento",
		EntityID:  audit.UintPtr(ag.ID),
		Metadata:  map[string]string{"phase": string(phase)},
	})
	if phase == domain.PhaseEnd && ag.Status == string(domain.StatusConcluida) {
		uc.audit.Dispatch(audit.Event{
			UsuarioID: audit.UintPtr(actor.UserID),
			Action:    audit.ActionAgendamentoConcluido,
			Entity:    "agendamento",
			EntityID:  audit.UintPtr(ag.ID),
		})
	}

	return &dto.ScanDTO{
		OK:     true,
		ID:     ag.ID,
		Phase:  string(phase),
		At:     now,
		Status: ag.Status,
	}, nil
}
