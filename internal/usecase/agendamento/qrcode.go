package agendamento

import (
	"context"
	"fmt"

	"github.com/interserv/agendamento-api/internal/audit"
	domain "github.com/interserv/agendamento-api/internal/domain/agendamento"
	"github.com/interserv/agendamento-api/internal/domain/identity"
	"github.com/interserv/agendamento-api/internal/dto"
	"github.com/interserv/agendamento-api/internal/qrtoken"
)

type IssueQRCodeInput struct {
	AgendamentoID uint
	Phase         string
	// BaseURL prefixa o deep link devolvido junto do token.
	BaseURL string
}

// IssueQRCode devolve o token da etapa, gerando na primeira chamada.
// Chamadas concorrentes convergem para o token que foi gravado primeiro.
type IssueQRCode struct {
	repo   domain.Repository
	tokens qrtoken.Generator
	audit  audit.Recorder
}

func NewIssueQRCode(
	repo domain.Repository,
	tokens qrtoken.Generator,
	audit audit.Recorder,
) *IssueQRCode {
	return &IssueQRCode{
		repo:   repo,
		tokens: tokens,
		audit:  audit,
	}
}

func (uc *IssueQRCode) Execute(
	ctx context.Context,
	actor identity.Actor,
	in IssueQRCodeInput,
) (*dto.QRCodeDTO, error) {

	phase, err := domain.ParsePhase(in.Phase)
	if err != nil {
		return nil, err
	}

	ag, err := loadAgendamento(ctx, uc.repo, in.AgendamentoID)
	if err != nil {
		return nil, err
	}

	contr, err := contratanteOf(ctx, uc.repo, actor.UserID, domain.ErrAcessoNegado)
	if err != nil {
		return nil, err
	}
	if contr.ID != ag.ContratanteID {
		return nil, domain.ErrAcessoNegado
	}

	token, err := uc.tokenFor(ctx, actor, ag.ID, phase, domain.CheckpointOf(ag, phase).QR)
	if err != nil {
		return nil, err
	}

	return &dto.QRCodeDTO{
		ID:    ag.ID,
		Phase: string(phase),
		Token: token,
		URL:   domain.DeepLink(in.BaseURL, ag.ID, phase, token),
	}, nil
}

func (uc *IssueQRCode) tokenFor(
	ctx context.Context,
	actor identity.Actor,
	agendamentoID uint,
	phase domain.Phase,
	current *string,
) (string, error) {

	if current != nil && *current != "" {
		return *current, nil
	}

	novo, err := uc.tokens.Generate()
	if err != nil {
		return "", err
	}

	stored, err := uc.repo.SetPhaseTokenIfUnset(ctx, agendamentoID, phase, novo)
	if err != nil {
		return "", err
	}

	if stored {
		uc.audit.Dispatch(audit.Event{
			UsuarioID: audit.UintPtr(actor.UserID),
			Action:    audit.ActionQREmitido,
			Entity:    "agendamento",
			EntityID:  audit.UintPtr(agendamentoID),
			Metadata:  map[string]string{"phase": string(phase)},
		})
		return novo, nil
	}

	// outra requisição gravou antes; vale o token dela
	fresh, err := loadAgendamento(ctx, uc.repo, agendamentoID)
	if err != nil {
		return "", err
	}
	winner := domain.CheckpointOf(fresh, phase).QR
	if winner == nil || *winner == "" {
		return "", fmt.Errorf("qrcode: token da etapa %s sumiu após conflito", phase)
	}
	return *winner, nil
}
